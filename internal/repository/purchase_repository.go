package repository

import (
	"github.com/cb-Vicky-Gupta/quiz-app-backend/internal/model"
	"gorm.io/gorm"
)

type PurchaseRepository interface {
	Create(purchase *model.Purchase) error
	HasSuccessfulPurchase(userID, quizID uint) (bool, error)
}

type purchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) Create(purchase *model.Purchase) error {
	return r.db.Create(purchase).Error
}

func (r *purchaseRepository) HasSuccessfulPurchase(userID, quizID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Purchase{}).
		Where("user_id = ? AND quiz_id = ? AND status = ?", userID, quizID, model.PurchaseSuccess).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
