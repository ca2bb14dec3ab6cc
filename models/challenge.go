package models

import (
	"time"

	"gorm.io/gorm"
)

// ChallengeStatus is the lifecycle state of a commitment
type ChallengeStatus string

const (
	ChallengeStatusActive    ChallengeStatus = "active"
	ChallengeStatusCompleted ChallengeStatus = "completed"
	ChallengeStatusFailed    ChallengeStatus = "failed"
)

// Challenge is a user's commitment contract: a stake on a target gym cadence.
// OddsMultiplier, CoinsReward and RewardValue are computed once at creation
// from (SessionsPerWeek, DurationMonths, BetAmount) and never mutated.
type Challenge struct {
	ID             string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalUserID string `gorm:"index;not null" json:"external_user_id"` // links to profile service

	// Commitment parameters chosen by the user
	SessionsPerWeek int     `gorm:"not null" json:"sessions_per_week"` // 1-7
	DurationMonths  int     `gorm:"not null" json:"duration_months"`   // 1-12
	BetAmount       float64 `gorm:"not null" json:"bet_amount"`        // monthly stake, EUR

	// Derived at creation (pre-calculated to avoid recomputation)
	OddsMultiplier float64 `gorm:"not null" json:"odds_multiplier"` // 1dp
	CoinsReward    int64   `gorm:"not null" json:"coins_reward"`
	RewardValue    int64   `gorm:"not null" json:"reward_value"` // catalog value, EUR
	TotalTarget    int     `gorm:"not null" json:"total_target"` // sessions/week × 4 × months

	Status    ChallengeStatus `gorm:"type:varchar(16);not null;default:'active';index" json:"status"`
	StartDate time.Time       `gorm:"not null" json:"start_date"`
	EndDate   time.Time       `gorm:"not null" json:"end_date"`

	// Milestones
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	FailedAt    *time.Time `json:"failed_at,omitempty"`

	Timestamps
}

// Terminal reports whether the challenge can no longer transition
func (c *Challenge) Terminal() bool {
	return c.Status == ChallengeStatusCompleted || c.Status == ChallengeStatusFailed
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
