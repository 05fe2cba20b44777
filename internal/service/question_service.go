package service

import (
	"errors"
	"fmt"
	"math"

	"github.com/cb-Vicky-Gupta/quiz-app-backend/internal/dto"
	"github.com/cb-Vicky-Gupta/quiz-app-backend/internal/model"
	"github.com/cb-Vicky-Gupta/quiz-app-backend/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// QuestionService is the authoring side of the catalog. Edits never touch
// attempt rows: correctness already graded into AttemptQuestion entries stays
// as graded.
type QuestionService interface {
	CreateQuestion(adminID uint, req dto.CreateQuestionRequest) (*dto.AdminQuestionDTO, error)
	ListQuestions(adminID uint, typeFilter, search string, page, limit int) (*dto.AdminQuestionListResponse, error)
	GetQuestion(id uint) (*dto.AdminQuestionDTO, error)
	UpdateQuestion(adminID, id uint, req dto.UpdateQuestionRequest) (*dto.AdminQuestionDTO, error)
	DeleteQuestion(id uint) error
}

type questionService struct {
	questionRepo repository.QuestionRepository
	quizRepo     repository.QuizRepository
}

func NewQuestionService(questionRepo repository.QuestionRepository, quizRepo repository.QuizRepository) QuestionService {
	return &questionService{questionRepo: questionRepo, quizRepo: quizRepo}
}

func (s *questionService) CreateQuestion(adminID uint, req dto.CreateQuestionRequest) (*dto.AdminQuestionDTO, error) {
	if _, err := s.quizRepo.FindByID(req.QuizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrQuizNotFound
		}
		return nil, fmt.Errorf("error loading quiz %d: %w", req.QuizID, err)
	}

	question := model.Question{
		QuizID:      req.QuizID,
		Title:       req.Title,
		Type:        req.Type,
		Category:    req.Category,
		Options:     req.Options,
		Answer:      req.Answer,
		IsActive:    true,
		QuestionFor: req.QuestionFor,
		CreatedBy:   adminID,
		UpdatedBy:   adminID,
	}
	if err := s.questionRepo.Create(&question); err != nil {
		log.Error().Err(err).Uint("quizID", req.QuizID).Msg("CreateQuestion: failed to create question")
		return nil, fmt.Errorf("error creating question: %w", err)
	}

	var resp dto.AdminQuestionDTO
	copier.Copy(&resp, &question)
	return &resp, nil
}

func (s *questionService) ListQuestions(adminID uint, typeFilter, search string, page, limit int) (*dto.AdminQuestionListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	offset := (page - 1) * limit

	questions, total, err := s.questionRepo.FindByAdmin(adminID, typeFilter, search, offset, limit)
	if err != nil {
		log.Error().Err(err).Uint("adminID", adminID).Msg("ListQuestions: repository error")
		return nil, fmt.Errorf("error listing questions: %w", err)
	}

	var dtos []dto.AdminQuestionDTO
	copier.Copy(&dtos, &questions)
	return &dto.AdminQuestionListResponse{
		Questions:  dtos,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

func (s *questionService) GetQuestion(id uint) (*dto.AdminQuestionDTO, error) {
	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("error loading question %d: %w", id, err)
	}
	var resp dto.AdminQuestionDTO
	copier.Copy(&resp, question)
	return &resp, nil
}

func (s *questionService) UpdateQuestion(adminID, id uint, req dto.UpdateQuestionRequest) (*dto.AdminQuestionDTO, error) {
	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("error loading question %d: %w", id, err)
	}

	question.Title = req.Title
	question.Type = req.Type
	question.Category = req.Category
	question.Options = req.Options
	question.Answer = req.Answer
	question.UpdatedBy = adminID

	if err := s.questionRepo.Update(question); err != nil {
		log.Error().Err(err).Uint("questionID", id).Msg("UpdateQuestion: failed to update question")
		return nil, fmt.Errorf("error updating question: %w", err)
	}

	var resp dto.AdminQuestionDTO
	copier.Copy(&resp, question)
	return &resp, nil
}

func (s *questionService) DeleteQuestion(id uint) error {
	if _, err := s.questionRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.ErrQuestionNotFound
		}
		return fmt.Errorf("error loading question %d: %w", id, err)
	}
	if err := s.questionRepo.Delete(id); err != nil {
		log.Error().Err(err).Uint("questionID", id).Msg("DeleteQuestion: failed to delete question")
		return fmt.Errorf("error deleting question: %w", err)
	}
	return nil
}
