package service

import (
	"fmt"

	"github.com/cb-Vicky-Gupta/quiz-app-backend/internal/repository"
	"github.com/rs/zerolog/log"
)

// AccessService decides whether a user may start an attempt on a quiz.
// Side-effect free; any lookup failure denies access.
type AccessService interface {
	CanStart(userID, quizID uint) (bool, error)
}

type accessService struct {
	quizRepo     repository.QuizRepository
	purchaseRepo repository.PurchaseRepository
}

func NewAccessService(quizRepo repository.QuizRepository, purchaseRepo repository.PurchaseRepository) AccessService {
	return &accessService{quizRepo: quizRepo, purchaseRepo: purchaseRepo}
}

func (s *accessService) CanStart(userID, quizID uint) (bool, error) {
	quiz, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Msg("CanStart: quiz lookup failed")
		return false, fmt.Errorf("error loading quiz for entitlement check: %w", err)
	}
	if !quiz.IsActive {
		return false, nil
	}
	if quiz.Price == 0 {
		return true, nil
	}

	purchased, err := s.purchaseRepo.HasSuccessfulPurchase(userID, quizID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Uint("quizID", quizID).Msg("CanStart: purchase lookup failed")
		return false, fmt.Errorf("error checking purchase: %w", err)
	}
	return purchased, nil
}
