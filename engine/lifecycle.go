// engine/lifecycle.go
package engine

import (
	"time"

	"challenge-reward-system/models"
)

// LifecycleDecision is the outcome of evaluating a challenge against its
// ledger at a point in time.
type LifecycleDecision struct {
	Status     models.ChallengeStatus
	Transition bool // true when the challenge should move to Status now
}

// EvaluateLifecycle decides whether a challenge transitions. Transitions only
// run forward: a challenge completes once its approved session count reaches
// the target at or before its end date, and fails once the end date has
// passed with the target unmet. Evaluating an already-terminal challenge is
// an idempotent no-op, never an error.
func EvaluateLifecycle(c *models.Challenge, approvedCount int, now time.Time) LifecycleDecision {
	if c.Terminal() {
		return LifecycleDecision{Status: c.Status, Transition: false}
	}

	if approvedCount >= c.TotalTarget && !now.After(c.EndDate) {
		return LifecycleDecision{Status: models.ChallengeStatusCompleted, Transition: true}
	}

	if now.After(c.EndDate) {
		// Target reached exactly at the deadline still counts as completed.
		if approvedCount >= c.TotalTarget {
			return LifecycleDecision{Status: models.ChallengeStatusCompleted, Transition: true}
		}
		return LifecycleDecision{Status: models.ChallengeStatusFailed, Transition: true}
	}

	return LifecycleDecision{Status: models.ChallengeStatusActive, Transition: false}
}
