package model

import (
	"time"

	"gorm.io/gorm"
)

type Quiz struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Title       string         `json:"title" gorm:"not null;uniqueIndex"`
	Description string         `json:"description,omitempty"`
	Price       int64          `json:"price" gorm:"not null;default:0"` // smallest currency unit; 0 means free
	IsActive    bool           `json:"is_active" gorm:"not null;default:true"`
	Questions   []Question     `json:"questions,omitempty" gorm:"foreignKey:QuizID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
