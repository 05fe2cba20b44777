package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanStartFreeQuiz(t *testing.T) {
	env := newTestEnv()
	env.addQuiz(1, 0)

	svc := NewAccessService(env.quizzes, env.purchases)

	allowed, err := svc.CanStart(7, 1)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestCanStartPaidQuizRequiresSuccessfulPurchase(t *testing.T) {
	env := newTestEnv()
	env.addQuiz(1, 49900)

	svc := NewAccessService(env.quizzes, env.purchases)

	allowed, err := svc.CanStart(7, 1)
	require.NoError(t, err)
	assert.False(t, allowed)

	env.purchases.success[[2]uint{7, 1}] = true
	allowed, err = svc.CanStart(7, 1)
	require.NoError(t, err)
	assert.True(t, allowed)

	// The entitlement is per user.
	allowed, err = svc.CanStart(8, 1)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestCanStartInactiveQuizDenied(t *testing.T) {
	env := newTestEnv()
	env.addQuiz(1, 0)
	quiz := env.quizzes.quizzes[1]
	quiz.IsActive = false
	env.quizzes.quizzes[1] = quiz

	svc := NewAccessService(env.quizzes, env.purchases)

	allowed, err := svc.CanStart(7, 1)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestCanStartFailsClosedOnLookupErrors(t *testing.T) {
	env := newTestEnv()
	env.addQuiz(1, 49900)
	env.purchases.err = assert.AnError

	svc := NewAccessService(env.quizzes, env.purchases)

	allowed, err := svc.CanStart(7, 1)
	require.Error(t, err)
	assert.False(t, allowed)

	env.quizzes.err = assert.AnError
	allowed, err = svc.CanStart(7, 1)
	require.Error(t, err)
	assert.False(t, allowed)
}
