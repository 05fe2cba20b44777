package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/cb-Vicky-Gupta/quiz-app-backend/internal/dto"
	"github.com/cb-Vicky-Gupta/quiz-app-backend/internal/model"
	"github.com/cb-Vicky-Gupta/quiz-app-backend/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// PassPercentage is the pass/fail threshold for a completed attempt.
const PassPercentage = 50.0

// ReportService produces the structured result data a reporting collaborator
// (PDF, email) formats. Pure read-side: expired-but-unflipped attempts are
// reported as EXPIRED by convention without being written back.
type ReportService interface {
	DetailedReport(attemptID, userID uint) (*dto.ReportResponse, error)
	UserAttempts(userID, quizID uint) ([]dto.AttemptSummaryDTO, error)
}

type reportService struct {
	attemptRepo repository.QuizAttemptRepository
	now         func() time.Time
}

func NewReportService(attemptRepo repository.QuizAttemptRepository) ReportService {
	return &reportService{attemptRepo: attemptRepo, now: time.Now}
}

// NewReportServiceWithClock is test-only for deterministic remaining-time and
// status views.
func NewReportServiceWithClock(attemptRepo repository.QuizAttemptRepository, now func() time.Time) ReportService {
	return &reportService{attemptRepo: attemptRepo, now: now}
}

func (s *reportService) DetailedReport(attemptID, userID uint) (*dto.ReportResponse, error) {
	attempt, err := s.attemptRepo.FindByIDWithQuestions(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrAttemptNotFound
		}
		return nil, fmt.Errorf("error loading attempt %d: %w", attemptID, err)
	}
	if attempt.UserID != userID {
		log.Warn().Uint("attemptID", attemptID).Uint("ownerID", attempt.UserID).Uint("callerID", userID).
			Msg("DetailedReport: attempt ownership mismatch")
		return nil, model.ErrForbidden
	}

	resp := &dto.ReportResponse{
		AttemptID:   attempt.ID,
		QuizID:      attempt.QuizID,
		Status:      attempt.Status,
		StartedAt:   attempt.StartedAt,
		CompletedAt: attempt.CompletedAt,
	}

	if attempt.Status != model.AttemptCompleted {
		remaining := int64(attempt.ExpiresAt.Sub(s.now()).Seconds())
		if remaining < 0 {
			remaining = 0
		}
		if attempt.Status == model.AttemptInProgress && s.now().After(attempt.ExpiresAt) {
			resp.Status = model.AttemptExpired
		}
		resp.RemainingSeconds = &remaining
		return resp, nil
	}

	total := len(attempt.Questions)
	percentage := 0.0
	if total > 0 {
		percentage = float64(attempt.Score) / float64(total) * 100
	}
	grade := letterGrade(percentage)
	passed := percentage >= PassPercentage

	resp.Score = &attempt.Score
	resp.TotalQuestions = &total
	resp.Percentage = &percentage
	resp.Grade = &grade
	resp.Passed = &passed

	gain, err := s.improvementGain(attempt, percentage)
	if err != nil {
		// The delta is decoration on the report; the report itself survives.
		log.Error().Err(err).Uint("attemptID", attemptID).Msg("DetailedReport: failed to compute improvement gain")
	} else {
		resp.Gain = gain
	}
	return resp, nil
}

// improvementGain compares the attempt's percentage against the average
// percentage of the user's earlier completed attempts on the same quiz.
// Returns nil when there are no prior attempts.
func (s *reportService) improvementGain(attempt *model.QuizAttempt, currentPercent float64) (*float64, error) {
	previous, err := s.attemptRepo.FindCompletedByUserAndQuiz(attempt.UserID, attempt.QuizID)
	if err != nil {
		return nil, fmt.Errorf("error loading prior attempts: %w", err)
	}

	sum := 0.0
	count := 0
	for _, prev := range previous {
		if prev.ID == attempt.ID {
			continue
		}
		if attempt.CompletedAt != nil && prev.CompletedAt != nil && !prev.CompletedAt.Before(*attempt.CompletedAt) {
			continue
		}
		if len(prev.Questions) == 0 {
			continue
		}
		sum += float64(prev.Score) / float64(len(prev.Questions)) * 100
		count++
	}
	if count == 0 {
		return nil, nil
	}
	gain := currentPercent - sum/float64(count)
	return &gain, nil
}

func (s *reportService) UserAttempts(userID, quizID uint) ([]dto.AttemptSummaryDTO, error) {
	attempts, err := s.attemptRepo.FindAllByUserAndQuiz(userID, quizID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Uint("quizID", quizID).Msg("UserAttempts: failed to load attempts")
		return nil, fmt.Errorf("error loading attempts: %w", err)
	}

	summaries := make([]dto.AttemptSummaryDTO, 0, len(attempts))
	for _, attempt := range attempts {
		status := attempt.Status
		if status == model.AttemptInProgress && s.now().After(attempt.ExpiresAt) {
			status = model.AttemptExpired
		}
		summaries = append(summaries, dto.AttemptSummaryDTO{
			AttemptID:      attempt.ID,
			QuizID:         attempt.QuizID,
			Status:         status,
			Score:          attempt.Score,
			TotalQuestions: len(attempt.Questions),
			StartedAt:      attempt.StartedAt,
			CompletedAt:    attempt.CompletedAt,
		})
	}
	return summaries, nil
}

func letterGrade(percentage float64) string {
	switch {
	case percentage >= 90:
		return "A+"
	case percentage >= 80:
		return "A"
	case percentage >= 70:
		return "B"
	case percentage >= 60:
		return "C"
	case percentage >= 50:
		return "D"
	default:
		return "F"
	}
}
