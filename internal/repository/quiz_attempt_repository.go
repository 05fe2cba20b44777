package repository

import (
	"time"

	"github.com/cb-Vicky-Gupta/quiz-app-backend/internal/model"
	"gorm.io/gorm"
)

type QuizAttemptRepository interface {
	// Create inserts the attempt with its reserved questions. A partial unique
	// index on (user_id, quiz_id) for IN_PROGRESS rows makes concurrent starts
	// surface as gorm.ErrDuplicatedKey.
	Create(attempt *model.QuizAttempt) error
	FindByIDWithQuestions(id uint) (*model.QuizAttempt, error)
	FindInProgress(userID, quizID uint) (*model.QuizAttempt, error)
	// SaveAnswer writes one answer as a single conditional UPDATE scoped to
	// (attempt_id, question_id), so concurrent retries for the same question
	// cannot interleave partial state.
	SaveAnswer(attemptID, questionID uint, answer []string, correct bool) error
	UpdateStatus(id uint, status string, completedAt *time.Time, score *int) error
	FindCompletedByQuiz(quizID uint, offset, limit int) ([]model.QuizAttempt, error)
	FindCompletedByUserAndQuiz(userID, quizID uint) ([]model.QuizAttempt, error)
	FindAllByUserAndQuiz(userID, quizID uint) ([]model.QuizAttempt, error)
}

type quizAttemptRepository struct {
	db *gorm.DB
}

func NewQuizAttemptRepository(db *gorm.DB) QuizAttemptRepository {
	return &quizAttemptRepository{db: db}
}

func (r *quizAttemptRepository) Create(attempt *model.QuizAttempt) error {
	// GORM creates the associated AttemptQuestion rows in the same transaction.
	return r.db.Create(attempt).Error
}

func (r *quizAttemptRepository) FindByIDWithQuestions(id uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("attempt_questions.id ASC")
		}).
		Preload("Questions.Question").
		First(&attempt, id).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *quizAttemptRepository) FindInProgress(userID, quizID uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("attempt_questions.id ASC")
		}).
		Preload("Questions.Question").
		Where("user_id = ? AND quiz_id = ? AND status = ?", userID, quizID, model.AttemptInProgress).
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *quizAttemptRepository) SaveAnswer(attemptID, questionID uint, answer []string, correct bool) error {
	// Select forces the zero-value Correct=false through; the struct form keeps
	// the JSON serializer on Answer in play.
	result := r.db.Model(&model.AttemptQuestion{}).
		Where("attempt_id = ? AND question_id = ?", attemptID, questionID).
		Select("answer", "visited", "correct").
		Updates(model.AttemptQuestion{Answer: answer, Visited: true, Correct: correct})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *quizAttemptRepository) UpdateStatus(id uint, status string, completedAt *time.Time, score *int) error {
	updates := map[string]interface{}{"status": status}
	if completedAt != nil {
		updates["completed_at"] = *completedAt
	}
	if score != nil {
		updates["score"] = *score
	}
	return r.db.Model(&model.QuizAttempt{}).Where("id = ?", id).Updates(updates).Error
}

func (r *quizAttemptRepository) FindCompletedByQuiz(quizID uint, offset, limit int) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.db.
		Preload("Questions").
		Where("quiz_id = ? AND status = ?", quizID, model.AttemptCompleted).
		Order("score DESC, completed_at ASC").
		Offset(offset).Limit(limit).
		Find(&attempts).Error
	return attempts, err
}

func (r *quizAttemptRepository) FindCompletedByUserAndQuiz(userID, quizID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.db.
		Preload("Questions").
		Where("user_id = ? AND quiz_id = ? AND status = ?", userID, quizID, model.AttemptCompleted).
		Order("completed_at ASC").
		Find(&attempts).Error
	return attempts, err
}

func (r *quizAttemptRepository) FindAllByUserAndQuiz(userID, quizID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.db.
		Preload("Questions").
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("started_at DESC").
		Find(&attempts).Error
	return attempts, err
}
