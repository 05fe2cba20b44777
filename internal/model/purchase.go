package model

import (
	"time"

	"gorm.io/gorm"
)

// Purchase statuses, mirroring the payment gateway lifecycle.
const (
	PurchasePending = "PENDING"
	PurchaseSuccess = "SUCCESS"
	PurchaseFailed  = "FAILED"
)

// Purchase is the stored entitlement fact for (user, quiz). The attempt
// engine only cares whether a SUCCESS row exists; order creation and
// webhook reconciliation live with the payment collaborator.
type Purchase struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	UserID    uint           `json:"user_id" gorm:"not null;index"`
	QuizID    uint           `json:"quiz_id" gorm:"not null;index"`
	OrderID   string         `json:"order_id" gorm:"not null;uniqueIndex"`
	Amount    int64          `json:"amount" gorm:"not null"`
	Currency  string         `json:"currency" gorm:"not null;default:'INR'"`
	Status    string         `json:"status" gorm:"not null;default:'PENDING';index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
