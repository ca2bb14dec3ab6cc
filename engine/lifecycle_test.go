package engine

import (
	"testing"
	"time"

	"challenge-reward-system/models"
)

func testChallenge() *models.Challenge {
	return &models.Challenge{
		ID:              "ch-1",
		SessionsPerWeek: 3,
		DurationMonths:  3,
		TotalTarget:     36,
		Status:          models.ChallengeStatusActive,
		StartDate:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestLifecycleStaysActive(t *testing.T) {
	c := testChallenge()
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	d := EvaluateLifecycle(c, 10, now)
	if d.Transition {
		t.Error("Transition = true, want false")
	}
	if d.Status != models.ChallengeStatusActive {
		t.Errorf("Status = %q, want %q", d.Status, models.ChallengeStatusActive)
	}
}

func TestLifecycleCompletesOnTargetReached(t *testing.T) {
	c := testChallenge()
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)

	d := EvaluateLifecycle(c, 36, now)
	if !d.Transition {
		t.Fatal("Transition = false, want true")
	}
	if d.Status != models.ChallengeStatusCompleted {
		t.Errorf("Status = %q, want %q", d.Status, models.ChallengeStatusCompleted)
	}
}

func TestLifecycleFailsAfterEndDate(t *testing.T) {
	c := testChallenge()
	now := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)

	d := EvaluateLifecycle(c, 20, now)
	if !d.Transition {
		t.Fatal("Transition = false, want true")
	}
	if d.Status != models.ChallengeStatusFailed {
		t.Errorf("Status = %q, want %q", d.Status, models.ChallengeStatusFailed)
	}
}

func TestLifecycleCompletesWhenEvaluatedLate(t *testing.T) {
	// Target was reached before the end date but the sweep only ran after it.
	c := testChallenge()
	now := time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC)

	d := EvaluateLifecycle(c, 36, now)
	if d.Status != models.ChallengeStatusCompleted {
		t.Errorf("Status = %q, want %q", d.Status, models.ChallengeStatusCompleted)
	}
}

func TestLifecycleTerminalIsIdempotent(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	for _, status := range []models.ChallengeStatus{models.ChallengeStatusCompleted, models.ChallengeStatusFailed} {
		c := testChallenge()
		c.Status = status

		d := EvaluateLifecycle(c, 0, now)
		if d.Transition {
			t.Errorf("%s: Transition = true, want false", status)
		}
		if d.Status != status {
			t.Errorf("%s: Status = %q, want unchanged", status, d.Status)
		}
	}
}
