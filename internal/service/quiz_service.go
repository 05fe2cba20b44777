package service

import (
	"fmt"

	"github.com/cb-Vicky-Gupta/quiz-app-backend/internal/dto"
	"github.com/cb-Vicky-Gupta/quiz-app-backend/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// QuizService serves the user-facing quiz catalog.
type QuizService interface {
	ListQuizzes(page, limit int) (*dto.QuizListResponse, error)
}

type quizService struct {
	quizRepo repository.QuizRepository
}

func NewQuizService(quizRepo repository.QuizRepository) QuizService {
	return &quizService{quizRepo: quizRepo}
}

func (s *quizService) ListQuizzes(page, limit int) (*dto.QuizListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	offset := (page - 1) * limit

	quizzes, total, err := s.quizRepo.FindAllActive(offset, limit)
	if err != nil {
		log.Error().Err(err).Msg("ListQuizzes: repository error")
		return nil, fmt.Errorf("error listing quizzes: %w", err)
	}

	var dtos []dto.QuizSummaryDTO
	copier.Copy(&dtos, &quizzes)
	return &dto.QuizListResponse{
		Quizzes: dtos,
		Total:   total,
		Page:    page,
		Limit:   limit,
	}, nil
}
