// models/payment_mirror.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// StakePaymentMirror mirrors stake charge state from the payment service.
// Payment processing itself lives entirely in that service — we keep a local
// read copy so dashboards can show whether a challenge's monthly stake has
// been charged without a cross-service call.
// Table name: stake_payment_mirror
type StakePaymentMirror struct {
	ID          string    `gorm:"primaryKey;type:uuid;not null" json:"id"`
	UserID      string    `gorm:"type:uuid;not null;index" json:"user_id"` // External user ID
	ChallengeID string    `gorm:"type:uuid;not null;index" json:"challenge_id"`
	PaymentRef  string    `gorm:"type:varchar(128);not null;uniqueIndex" json:"payment_ref"` // Primary lookup key
	Amount      float64   `gorm:"not null" json:"amount"`
	Currency    string    `gorm:"type:varchar(8);not null" json:"currency"`
	Status      string    `gorm:"type:varchar(32);not null;index" json:"status"` // pending/charged/refunded/forfeited
	ChargedAt   *time.Time `json:"charged_at,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`

	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (StakePaymentMirror) TableName() string {
	return "stake_payment_mirror"
}
