package service

import (
	"testing"

	"github.com/cb-Vicky-Gupta/quiz-app-backend/internal/dto"
	"github.com/cb-Vicky-Gupta/quiz-app-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateQuestion(t *testing.T) {
	env := newTestEnv()
	env.addQuiz(1, 0)

	svc := NewQuestionService(env.questions, env.quizzes)

	created, err := svc.CreateQuestion(42, dto.CreateQuestionRequest{
		QuizID:      1,
		Title:       "Capital of France?",
		Type:        "single_choice",
		Category:    "geography",
		Options:     []string{"Paris", "Lyon", "Nice"},
		Answer:      []string{"Paris"},
		QuestionFor: model.QuestionForFree,
	})
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.True(t, created.IsActive)
	assert.Equal(t, []string{"Paris"}, created.Answer)

	stored, err := env.questions.FindByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(42), stored.CreatedBy)
	assert.Equal(t, uint(42), stored.UpdatedBy)
}

func TestCreateQuestionQuizNotFound(t *testing.T) {
	env := newTestEnv()

	svc := NewQuestionService(env.questions, env.quizzes)

	_, err := svc.CreateQuestion(42, dto.CreateQuestionRequest{
		QuizID:      99,
		Title:       "orphan",
		Type:        "single_choice",
		Options:     []string{"A", "B"},
		Answer:      []string{"A"},
		QuestionFor: model.QuestionForFree,
	})
	assert.ErrorIs(t, err, model.ErrQuizNotFound)
}

func TestUpdateQuestionTracksEditor(t *testing.T) {
	env := newTestEnv()
	env.addQuiz(1, 0)
	ids := env.addQuestions(1, 1)

	svc := NewQuestionService(env.questions, env.quizzes)

	updated, err := svc.UpdateQuestion(43, ids[0], dto.UpdateQuestionRequest{
		Title:   "Revised",
		Type:    "multiple_choice",
		Options: []string{"A", "B", "C"},
		Answer:  []string{"A", "C"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Revised", updated.Title)
	assert.Equal(t, []string{"A", "C"}, updated.Answer)

	stored, err := env.questions.FindByID(ids[0])
	require.NoError(t, err)
	assert.Equal(t, uint(43), stored.UpdatedBy)

	_, err = svc.UpdateQuestion(43, 999, dto.UpdateQuestionRequest{
		Title: "x", Type: "single_choice", Options: []string{"A", "B"}, Answer: []string{"A"},
	})
	assert.ErrorIs(t, err, model.ErrQuestionNotFound)
}

func TestDeleteQuestion(t *testing.T) {
	env := newTestEnv()
	env.addQuiz(1, 0)
	ids := env.addQuestions(1, 1)

	svc := NewQuestionService(env.questions, env.quizzes)

	require.NoError(t, svc.DeleteQuestion(ids[0]))

	_, err := svc.GetQuestion(ids[0])
	assert.ErrorIs(t, err, model.ErrQuestionNotFound)

	err = svc.DeleteQuestion(ids[0])
	assert.ErrorIs(t, err, model.ErrQuestionNotFound)
}

func TestListQuestionsPagination(t *testing.T) {
	env := newTestEnv()
	env.addQuiz(1, 0)

	svc := NewQuestionService(env.questions, env.quizzes)
	for i := 0; i < 5; i++ {
		_, err := svc.CreateQuestion(42, dto.CreateQuestionRequest{
			QuizID:      1,
			Title:       "q",
			Type:        "single_choice",
			Options:     []string{"A", "B"},
			Answer:      []string{"A"},
			QuestionFor: model.QuestionForFree,
		})
		require.NoError(t, err)
	}

	list, err := svc.ListQuestions(42, "", "", 1, 2)
	require.NoError(t, err)
	assert.Len(t, list.Questions, 2)
	assert.Equal(t, int64(5), list.Total)
	assert.Equal(t, 3, list.TotalPages)

	last, err := svc.ListQuestions(42, "", "", 3, 2)
	require.NoError(t, err)
	assert.Len(t, last.Questions, 1)

	other, err := svc.ListQuestions(7, "", "", 1, 10)
	require.NoError(t, err)
	assert.Empty(t, other.Questions)
}
