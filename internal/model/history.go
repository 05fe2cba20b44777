package model

import (
	"time"

	"gorm.io/gorm"
)

// QuestionHistory records that a user has seen a question on a quiz. It is
// upserted on every answer submission and never deleted; question selection
// for new attempts excludes every question recorded here, across all
// attempts, so abandoning and restarting a quiz never re-surfaces a question.
type QuestionHistory struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	UserID     uint           `json:"user_id" gorm:"not null;uniqueIndex:idx_history_user_quiz_question"`
	QuizID     uint           `json:"quiz_id" gorm:"not null;uniqueIndex:idx_history_user_quiz_question"`
	QuestionID uint           `json:"question_id" gorm:"not null;uniqueIndex:idx_history_user_quiz_question"`
	Visited    bool           `json:"visited" gorm:"not null;default:true"`
	Answered   bool           `json:"answered" gorm:"not null;default:false"`
	Correct    bool           `json:"correct" gorm:"not null;default:false"`
	Answer     []string       `json:"answer,omitempty" gorm:"serializer:json"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
