package engine

import (
	"testing"

	"challenge-reward-system/models"
)

func tierList(values ...int64) []models.RewardTier {
	out := make([]models.RewardTier, len(values))
	for i, v := range values {
		out[i] = models.RewardTier{Rank: i + 1, MinValue: v}
	}
	return out
}

func TestCatalogUnlockedAndNext(t *testing.T) {
	cat, err := NewCatalog(tierList(50, 100, 200, 400, 800, 1500))
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	unlocked := cat.UnlockedTiers(135)
	if len(unlocked) != 2 {
		t.Fatalf("len(unlocked) = %d, want 2", len(unlocked))
	}
	if unlocked[0].MinValue != 50 || unlocked[1].MinValue != 100 {
		t.Errorf("unlocked thresholds = [%d %d], want [50 100]", unlocked[0].MinValue, unlocked[1].MinValue)
	}

	next := cat.NextTier(135)
	if next == nil {
		t.Fatal("NextTier(135) = nil, want tier 200")
	}
	if next.MinValue != 200 {
		t.Errorf("NextTier(135).MinValue = %d, want 200", next.MinValue)
	}
}

func TestCatalogValueBeyondAllTiers(t *testing.T) {
	cat, err := NewCatalog(tierList(50, 100))
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	if next := cat.NextTier(5000); next != nil {
		t.Errorf("NextTier(5000) = %v, want nil", next)
	}
	if got := len(cat.UnlockedTiers(5000)); got != 2 {
		t.Errorf("len(UnlockedTiers(5000)) = %d, want 2", got)
	}
}

func TestCatalogNothingUnlocked(t *testing.T) {
	cat, err := NewCatalog(tierList(50, 100))
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	if got := len(cat.UnlockedTiers(10)); got != 0 {
		t.Errorf("len(UnlockedTiers(10)) = %d, want 0", got)
	}
	next := cat.NextTier(10)
	if next == nil || next.MinValue != 50 {
		t.Errorf("NextTier(10) = %v, want tier 50", next)
	}
}

func TestCatalogRejectsNonIncreasingThresholds(t *testing.T) {
	if _, err := NewCatalog(tierList(50, 50)); err == nil {
		t.Error("NewCatalog with duplicate thresholds = nil error, want error")
	}
	if _, err := NewCatalog(tierList(100, 50)); err == nil {
		t.Error("NewCatalog with decreasing thresholds = nil error, want error")
	}
	if _, err := NewCatalog(nil); err == nil {
		t.Error("NewCatalog(nil) = nil error, want error")
	}
}

func TestDefaultRewardCatalogIsValid(t *testing.T) {
	cat, err := NewCatalog(models.DefaultRewardCatalog)
	if err != nil {
		t.Fatalf("default catalog invalid: %v", err)
	}
	if len(cat.Tiers()) != 6 {
		t.Errorf("len(Tiers()) = %d, want 6", len(cat.Tiers()))
	}
}
