package repository

import (
	"github.com/cb-Vicky-Gupta/quiz-app-backend/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(question *model.Question) error
	FindByID(id uint) (*model.Question, error)
	FindByIDs(ids []uint) ([]model.Question, error)
	FindActiveByQuizID(quizID uint) ([]model.Question, error)
	FindByAdmin(adminID uint, typeFilter, search string, offset, limit int) ([]model.Question, int64, error)
	Update(question *model.Question) error
	Delete(id uint) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.Question) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByIDs(ids []uint) ([]model.Question, error) {
	var questions []model.Question
	if len(ids) == 0 {
		return questions, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&questions).Error
	return questions, err
}

// FindActiveByQuizID returns the question catalog for a quiz: active
// questions only, stable order.
func (r *questionRepository) FindActiveByQuizID(quizID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.
		Where("quiz_id = ? AND is_active = ?", quizID, true).
		Order("id ASC").
		Find(&questions).Error
	return questions, err
}

func (r *questionRepository) FindByAdmin(adminID uint, typeFilter, search string, offset, limit int) ([]model.Question, int64, error) {
	var questions []model.Question
	var total int64

	query := r.db.Model(&model.Question{}).Where("created_by = ? AND is_active = ?", adminID, true)
	if typeFilter != "" {
		query = query.Where("type = ?", typeFilter)
	}
	if search != "" {
		query = query.Where("title ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&questions).Error
	return questions, total, err
}

func (r *questionRepository) Update(question *model.Question) error {
	return r.db.Save(question).Error
}

func (r *questionRepository) Delete(id uint) error {
	return r.db.Delete(&model.Question{}, id).Error
}
