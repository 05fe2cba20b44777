package service

import (
	"errors"
	"fmt"

	"github.com/cb-Vicky-Gupta/quiz-app-backend/internal/model"
	"github.com/cb-Vicky-Gupta/quiz-app-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// PurchaseService records entitlement facts. The payment gateway integration
// (order creation, webhook reconciliation) lives outside this service; this
// is the back-office grant used until that collaborator writes the rows.
type PurchaseService interface {
	Grant(userID, quizID uint) (*model.Purchase, error)
}

type purchaseService struct {
	purchaseRepo repository.PurchaseRepository
	quizRepo     repository.QuizRepository
}

func NewPurchaseService(purchaseRepo repository.PurchaseRepository, quizRepo repository.QuizRepository) PurchaseService {
	return &purchaseService{purchaseRepo: purchaseRepo, quizRepo: quizRepo}
}

func (s *purchaseService) Grant(userID, quizID uint) (*model.Purchase, error) {
	quiz, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrQuizNotFound
		}
		return nil, fmt.Errorf("error loading quiz %d: %w", quizID, err)
	}

	purchase := &model.Purchase{
		UserID:   userID,
		QuizID:   quizID,
		OrderID:  "grant-" + uuid.NewString(),
		Amount:   quiz.Price,
		Currency: "INR",
		Status:   model.PurchaseSuccess,
	}
	if err := s.purchaseRepo.Create(purchase); err != nil {
		log.Error().Err(err).Uint("userID", userID).Uint("quizID", quizID).Msg("Grant: failed to record purchase")
		return nil, fmt.Errorf("error recording purchase: %w", err)
	}

	log.Info().Uint("userID", userID).Uint("quizID", quizID).Str("orderID", purchase.OrderID).Msg("purchase granted")
	return purchase, nil
}
