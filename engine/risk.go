// engine/risk.go
package engine

import (
	"fmt"
	"math"
)

// Commitment parameter bounds exposed by the setup UI. RiskModel inputs are
// rejected — not clamped — when outside these ranges, since a clamped value
// would silently corrupt the reward math.
const (
	MinSessionsPerWeek = 1
	MaxSessionsPerWeek = 7
	MinDurationMonths  = 1
	MaxDurationMonths  = 12
)

// ValidateParams fail-fast checks commitment parameters before any derived
// number is computed.
func ValidateParams(betAmount float64, durationMonths, sessionsPerWeek int) error {
	if betAmount <= 0 || math.IsNaN(betAmount) || math.IsInf(betAmount, 0) {
		return fmt.Errorf("bet amount must be a positive number, got %v", betAmount)
	}
	if durationMonths < MinDurationMonths || durationMonths > MaxDurationMonths {
		return fmt.Errorf("duration must be %d-%d months, got %d", MinDurationMonths, MaxDurationMonths, durationMonths)
	}
	if sessionsPerWeek < MinSessionsPerWeek || sessionsPerWeek > MaxSessionsPerWeek {
		return fmt.Errorf("sessions per week must be %d-%d, got %d", MinSessionsPerWeek, MaxSessionsPerWeek, sessionsPerWeek)
	}
	return nil
}

// StakeCoefficient is the strategic coefficient C(I) per stake bracket.
// Piecewise linear and continuous at each boundary: it climbs steeply for
// small stakes, peaks around 75-100, then decays toward a floor of zero so
// very large stakes cannot blow up the coin payout.
func StakeCoefficient(stake float64) float64 {
	switch {
	case stake <= 50:
		return 1 + 0.004*stake
	case stake <= 75:
		return 1.2 + 0.012*(stake-50)
	case stake <= 100:
		return 1.5 + 0.02*(stake-75)
	case stake <= 300:
		return 2 - 0.0045*(stake-100)
	case stake <= 1000:
		return 1.1 - 0.000785*(stake-300)
	default:
		return math.Max(0, 0.55-0.00055*(stake-1000))
	}
}

// CoinsReward = round(I × C(I) × (0.3 + 0.6·M^1.5) × (S/3)^1.1).
// The month factor grows without bound to reward long commitments; the
// session factor is super-linear and normalized so S=3 contributes 1.
func CoinsReward(stake float64, months, sessionsPerWeek int) int64 {
	cI := StakeCoefficient(stake)
	monthFactor := 0.3 + 0.6*math.Pow(float64(months), 1.5)
	sessionFactor := math.Pow(float64(sessionsPerWeek)/3, 1.1)
	return int64(math.Round(stake * cI * monthFactor * sessionFactor))
}

// OddsMultiplier is the coarse difficulty label shown next to the coin
// reward, rounded to one decimal. It deliberately uses step buckets instead
// of the continuous coin model; the two are independent and must not be
// unified.
func OddsMultiplier(sessionsPerWeek, months int) float64 {
	var sessionFactor float64
	switch {
	case sessionsPerWeek <= 2:
		sessionFactor = 1.2
	case sessionsPerWeek <= 4:
		sessionFactor = 1.8
	default:
		sessionFactor = 2.5
	}

	var monthFactor float64
	switch {
	case months <= 2:
		monthFactor = 1.1
	case months <= 4:
		monthFactor = 1.5
	default:
		monthFactor = 2.0
	}

	return math.Round(sessionFactor*monthFactor*10) / 10
}

// RewardValue is the catalog value granted on completion:
// round(total stake × odds) where total stake = monthly bet × months.
func RewardValue(betAmount float64, months int, odds float64) int64 {
	return int64(math.Round(betAmount * float64(months) * odds))
}
