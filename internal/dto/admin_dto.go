package dto

import "time"

// AdminQuestionDTO is the authoring view of a question, correct answers
// included.
type AdminQuestionDTO struct {
	ID          uint      `json:"id"`
	QuizID      uint      `json:"quiz_id"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	Category    string    `json:"category,omitempty"`
	Options     []string  `json:"options"`
	Answer      []string  `json:"answer"`
	QuestionFor string    `json:"question_for"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AdminQuestionListResponse wraps the paginated authoring list.
type AdminQuestionListResponse struct {
	Questions  []AdminQuestionDTO `json:"questions"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}
