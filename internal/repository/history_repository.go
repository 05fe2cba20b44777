package repository

import (
	"github.com/cb-Vicky-Gupta/quiz-app-backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuestionHistoryRepository interface {
	// Upsert records exposure for (user, quiz, question). Last write wins, so
	// retried submissions are idempotent.
	Upsert(record *model.QuestionHistory) error
	FindQuestionIDs(userID, quizID uint) ([]uint, error)
}

type questionHistoryRepository struct {
	db *gorm.DB
}

func NewQuestionHistoryRepository(db *gorm.DB) QuestionHistoryRepository {
	return &questionHistoryRepository{db: db}
}

func (r *questionHistoryRepository) Upsert(record *model.QuestionHistory) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "quiz_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"visited", "answered", "correct", "answer", "updated_at",
		}),
	}).Create(record).Error
}

func (r *questionHistoryRepository) FindQuestionIDs(userID, quizID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.QuestionHistory{}).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Pluck("question_id", &ids).Error
	return ids, err
}
