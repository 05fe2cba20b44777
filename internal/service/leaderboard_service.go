package service

import (
	"fmt"

	"github.com/cb-Vicky-Gupta/quiz-app-backend/internal/dto"
	"github.com/cb-Vicky-Gupta/quiz-app-backend/internal/repository"
	"github.com/rs/zerolog/log"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// LeaderboardService is the read-side ranking projection over completed
// attempts. It never mutates attempt records.
type LeaderboardService interface {
	Leaderboard(quizID uint, page, limit int) ([]dto.LeaderboardEntryDTO, error)
}

type leaderboardService struct {
	attemptRepo repository.QuizAttemptRepository
}

func NewLeaderboardService(attemptRepo repository.QuizAttemptRepository) LeaderboardService {
	return &leaderboardService{attemptRepo: attemptRepo}
}

// Leaderboard orders by (score desc, completedAt asc) so ties break in favor
// of the earlier finisher. Rank is offset-based and continuous across pages.
func (s *leaderboardService) Leaderboard(quizID uint, page, limit int) ([]dto.LeaderboardEntryDTO, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	offset := (page - 1) * limit

	attempts, err := s.attemptRepo.FindCompletedByQuiz(quizID, offset, limit)
	if err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Msg("Leaderboard: failed to load completed attempts")
		return nil, fmt.Errorf("error loading leaderboard for quiz %d: %w", quizID, err)
	}

	entries := make([]dto.LeaderboardEntryDTO, 0, len(attempts))
	for i, attempt := range attempts {
		entry := dto.LeaderboardEntryDTO{
			Rank:      offset + i + 1,
			AttemptID: attempt.ID,
			UserID:    attempt.UserID,
			Score:     attempt.Score,
		}
		if attempt.CompletedAt != nil {
			entry.CompletedAt = *attempt.CompletedAt
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
