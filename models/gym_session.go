package models

import "time"

// GymSession records one attested gym visit. Rows are immutable once created:
// the verdict comes from the external photo-attestation gateway and is stored
// as-is. Only approved sessions count toward progress and streaks.
type GymSession struct {
	ID             string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ChallengeID    string `gorm:"index;not null" json:"challenge_id"`
	ExternalUserID string `gorm:"index;not null" json:"external_user_id"`

	// Verdict from the attestation gateway
	Approved   bool   `gorm:"not null" json:"approved"`
	Confidence int    `gorm:"not null" json:"confidence"` // 0-100
	Reason     string `gorm:"type:text" json:"reason"`

	PhotoURL   string    `gorm:"type:text" json:"photo_url,omitempty"`
	VerifiedAt time.Time `gorm:"not null;index" json:"verified_at"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
