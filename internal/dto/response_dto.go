package dto

import "time"

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// AttemptQuestionDTO is a question as shown to a user mid-attempt: display
// fields only, never the correct answers.
type AttemptQuestionDTO struct {
	QuestionID uint     `json:"question_id"`
	Title      string   `json:"title"`
	Type       string   `json:"type"`
	Category   string   `json:"category,omitempty"`
	Options    []string `json:"options"`
	Visited    bool     `json:"visited"`
	Answer     []string `json:"answer,omitempty"` // the user's own submission, for resume
}

// AttemptResponse is returned by start/resume and the attempt view.
type AttemptResponse struct {
	ID               uint                 `json:"id"`
	QuizID           uint                 `json:"quiz_id"`
	Status           string               `json:"status"`
	StartedAt        time.Time            `json:"started_at"`
	ExpiresAt        time.Time            `json:"expires_at"`
	RemainingSeconds int64                `json:"remaining_seconds"`
	Questions        []AttemptQuestionDTO `json:"questions"`
	Resumed          bool                 `json:"resumed"`
}

// SubmitAnswerResponse deliberately carries correctness only; correct answers
// are never leaked mid-attempt.
type SubmitAnswerResponse struct {
	AttemptID uint `json:"attempt_id"`
	Correct   bool `json:"correct"`
}

// QuestionResultDTO is one row of the completion breakdown.
type QuestionResultDTO struct {
	QuestionID    uint     `json:"question_id"`
	Title         string   `json:"title"`
	Options       []string `json:"options"`
	CorrectAnswer []string `json:"correct_answer"`
	UserAnswer    []string `json:"user_answer"`
	Visited       bool     `json:"visited"`
	Correct       bool     `json:"correct"`
}

// CompleteAttemptResponse is the scored result returned on completion.
type CompleteAttemptResponse struct {
	AttemptID      uint                `json:"attempt_id"`
	QuizID         uint                `json:"quiz_id"`
	Score          int                 `json:"score"`
	TotalQuestions int                 `json:"total_questions"`
	CompletedAt    time.Time           `json:"completed_at"`
	Questions      []QuestionResultDTO `json:"questions"`
}

// LeaderboardEntryDTO ranks one completed attempt. Rank is continuous across
// pages.
type LeaderboardEntryDTO struct {
	Rank        int       `json:"rank"`
	AttemptID   uint      `json:"attempt_id"`
	UserID      uint      `json:"user_id"`
	Score       int       `json:"score"`
	CompletedAt time.Time `json:"completed_at"`
}

// ReportResponse is the structured result a reporting collaborator (PDF,
// email) formats. Gain is nil when the user has no prior completed attempts
// on the quiz.
type ReportResponse struct {
	AttemptID        uint       `json:"attempt_id"`
	QuizID           uint       `json:"quiz_id"`
	Status           string     `json:"status"`
	RemainingSeconds *int64     `json:"remaining_seconds,omitempty"`
	Score            *int       `json:"score,omitempty"`
	TotalQuestions   *int       `json:"total_questions,omitempty"`
	Percentage       *float64   `json:"percentage,omitempty"`
	Grade            *string    `json:"grade,omitempty"`
	Passed           *bool      `json:"passed,omitempty"`
	Gain             *float64   `json:"gain,omitempty"`
	StartedAt        time.Time  `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

// AttemptSummaryDTO lists a user's attempts on a quiz for the review screen.
type AttemptSummaryDTO struct {
	AttemptID      uint       `json:"attempt_id"`
	QuizID         uint       `json:"quiz_id"`
	Status         string     `json:"status"`
	Score          int        `json:"score"`
	TotalQuestions int        `json:"total_questions"`
	StartedAt      time.Time  `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

// QuizSummaryDTO lists quizzes for the catalog view.
type QuizSummaryDTO struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Price       int64     `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
}

// QuizListResponse wraps the paginated catalog.
type QuizListResponse struct {
	Quizzes []QuizSummaryDTO `json:"quizzes"`
	Total   int64            `json:"total"`
	Page    int              `json:"page"`
	Limit   int              `json:"limit"`
}
