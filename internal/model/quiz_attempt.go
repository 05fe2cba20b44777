package model

import (
	"time"

	"gorm.io/gorm"
)

// Attempt statuses. COMPLETED and EXPIRED are terminal.
const (
	AttemptInProgress = "IN_PROGRESS"
	AttemptCompleted  = "COMPLETED"
	AttemptExpired    = "EXPIRED"
)

// QuizAttempt is one timed instance of a user taking a quiz. Its
// AttemptQuestion rows are owned exclusively by this aggregate and are
// only ever written through the attempt service.
type QuizAttempt struct {
	ID          uint              `gorm:"primarykey" json:"id"`
	UserID      uint              `json:"user_id" gorm:"not null;index"`
	QuizID      uint              `json:"quiz_id" gorm:"not null;index"`
	Quiz        Quiz              `json:"quiz,omitempty" gorm:"foreignKey:QuizID"`
	Questions   []AttemptQuestion `json:"questions,omitempty" gorm:"foreignKey:AttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Status      string            `json:"status" gorm:"not null;default:'IN_PROGRESS';index"`
	StartedAt   time.Time         `json:"started_at" gorm:"autoCreateTime"`
	ExpiresAt   time.Time         `json:"expires_at" gorm:"not null"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
	Score       int               `json:"score" gorm:"not null;default:0"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	DeletedAt   gorm.DeletedAt    `gorm:"index" json:"-"`
}

// AttemptQuestion is a question reserved for an attempt, with the user's
// submitted answer and the correctness computed at submission time.
type AttemptQuestion struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	AttemptID  uint           `json:"attempt_id" gorm:"not null;index"`
	QuestionID uint           `json:"question_id" gorm:"not null;index"`
	Question   Question       `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	Answer     []string       `json:"answer" gorm:"serializer:json"`
	Visited    bool           `json:"visited" gorm:"not null;default:false"`
	Correct    bool           `json:"correct" gorm:"not null;default:false"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
