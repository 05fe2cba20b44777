package model

import (
	"time"

	"gorm.io/gorm"
)

// Audience values for Question.QuestionFor.
const (
	QuestionForFree = "free"
	QuestionForPaid = "paid"
)

type Question struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	QuizID      uint           `json:"quiz_id" gorm:"not null;index"`
	Title       string         `json:"title" gorm:"type:text;not null"`
	Type        string         `json:"type" gorm:"not null"` // "single_choice", "multi_choice"
	Category    string         `json:"category,omitempty"`
	Options     []string       `json:"options" gorm:"serializer:json;not null"`
	Answer      []string       `json:"answer" gorm:"serializer:json;not null"` // correct answers; multi-select keeps several
	IsActive    bool           `json:"is_active" gorm:"not null;default:true"`
	QuestionFor string         `json:"question_for" gorm:"not null;default:'free'"`
	CreatedBy   uint           `json:"created_by,omitempty" gorm:"index"`
	UpdatedBy   uint           `json:"updated_by,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
