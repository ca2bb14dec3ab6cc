package engine

import (
	"math"
	"testing"
)

func TestTotalTarget(t *testing.T) {
	if got := TotalTarget(3, 3); got != 36 {
		t.Errorf("TotalTarget(3, 3) = %d, want 36", got)
	}
	if got := TotalTarget(7, 12); got != 336 {
		t.Errorf("TotalTarget(7, 12) = %d, want 336", got)
	}
}

func TestCompletionPercent(t *testing.T) {
	if got := CompletionPercent(18, 48); got != 37.5 {
		t.Errorf("CompletionPercent(18, 48) = %v, want 37.5", got)
	}
}

func TestCompletionPercentZeroTarget(t *testing.T) {
	got := CompletionPercent(0, 0)
	if got != 0 || math.IsNaN(got) {
		t.Errorf("CompletionPercent(0, 0) = %v, want 0", got)
	}
}

func TestCompletionPercentFreshChallenge(t *testing.T) {
	// A newly created challenge with an empty ledger must report 0, not NaN.
	got := CompletionPercent(0, TotalTarget(3, 3))
	if got != 0 || math.IsNaN(got) {
		t.Errorf("CompletionPercent(0, 36) = %v, want 0", got)
	}
}

func TestRemainingSessions(t *testing.T) {
	if got := RemainingSessions(18, 48); got != 30 {
		t.Errorf("RemainingSessions(18, 48) = %d, want 30", got)
	}
	if got := RemainingSessions(50, 48); got != 0 {
		t.Errorf("RemainingSessions(50, 48) = %d, want 0", got)
	}
}
