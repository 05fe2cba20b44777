package service

import (
	"testing"
	"time"

	"github.com/cb-Vicky-Gupta/quiz-app-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedCompletedAttempt plants a finished attempt directly in the fake store,
// bypassing the lifecycle, for read-side projection tests.
func seedCompletedAttempt(env *testEnv, id, userID, quizID uint, score, total int, completedAt time.Time) {
	questions := make([]model.AttemptQuestion, total)
	for i := 0; i < total; i++ {
		questions[i] = model.AttemptQuestion{
			ID:         env.attempts.nextAQID,
			AttemptID:  id,
			QuestionID: uint(1000) + uint(i),
			Visited:    i < score,
			Correct:    i < score,
		}
		env.attempts.nextAQID++
	}
	finished := completedAt
	env.attempts.attempts[id] = model.QuizAttempt{
		ID:          id,
		UserID:      userID,
		QuizID:      quizID,
		Status:      model.AttemptCompleted,
		StartedAt:   completedAt.Add(-time.Hour),
		ExpiresAt:   completedAt.Add(23 * time.Hour),
		CompletedAt: &finished,
		Score:       score,
		Questions:   questions,
	}
	if id >= env.attempts.nextID {
		env.attempts.nextID = id + 1
	}
}

func TestLeaderboardOrderingAndTieBreak(t *testing.T) {
	env := newTestEnv()
	base := env.now

	seedCompletedAttempt(env, 1, 101, 1, 8, 10, base.Add(1*time.Minute))
	seedCompletedAttempt(env, 2, 102, 1, 10, 10, base.Add(2*time.Minute))
	seedCompletedAttempt(env, 3, 103, 1, 10, 10, base.Add(3*time.Minute))
	seedCompletedAttempt(env, 4, 104, 1, 6, 10, base.Add(4*time.Minute))
	// Different quiz, must not appear.
	seedCompletedAttempt(env, 5, 105, 2, 10, 10, base)

	svc := NewLeaderboardService(env.attempts)

	entries, err := svc.Leaderboard(1, 1, 10)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	// Equal scores break in favor of the earlier finisher.
	assert.Equal(t, []uint{102, 103, 101, 104}, []uint{
		entries[0].UserID, entries[1].UserID, entries[2].UserID, entries[3].UserID,
	})
	for i, entry := range entries {
		assert.Equal(t, i+1, entry.Rank)
	}
	assert.Equal(t, 10, entries[0].Score)
	assert.Equal(t, base.Add(2*time.Minute), entries[0].CompletedAt)
}

func TestLeaderboardRankContinuousAcrossPages(t *testing.T) {
	env := newTestEnv()
	for i := uint(1); i <= 5; i++ {
		seedCompletedAttempt(env, i, 100+i, 1, int(10-i), 10, env.now.Add(time.Duration(i)*time.Minute))
	}

	svc := NewLeaderboardService(env.attempts)

	page1, err := svc.Leaderboard(1, 1, 2)
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, 1, page1[0].Rank)
	assert.Equal(t, 2, page1[1].Rank)

	page2, err := svc.Leaderboard(1, 2, 2)
	require.NoError(t, err)
	require.Len(t, page2, 2)
	assert.Equal(t, 3, page2[0].Rank)
	assert.Equal(t, 4, page2[1].Rank)
	assert.NotEqual(t, page1[0].UserID, page2[0].UserID)

	page3, err := svc.Leaderboard(1, 3, 2)
	require.NoError(t, err)
	require.Len(t, page3, 1)
	assert.Equal(t, 5, page3[0].Rank)
}

func TestLeaderboardClampsPageParameters(t *testing.T) {
	env := newTestEnv()
	seedCompletedAttempt(env, 1, 101, 1, 5, 10, env.now)

	svc := NewLeaderboardService(env.attempts)

	entries, err := svc.Leaderboard(1, 0, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Rank)

	entries, err = svc.Leaderboard(1, -3, 100000)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLeaderboardExcludesUnfinishedAttempts(t *testing.T) {
	env := newTestEnv()
	env.addQuiz(1, 0)
	env.addQuestions(1, 10)

	_, err := env.svc.StartQuiz(7, 1)
	require.NoError(t, err)

	svc := NewLeaderboardService(env.attempts)
	entries, err := svc.Leaderboard(1, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
