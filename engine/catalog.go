// engine/catalog.go
package engine

import (
	"fmt"

	"challenge-reward-system/models"
)

// Catalog is the fixed, ordered reward tier list. It is constructed once at
// startup from injected configuration and treated as immutable for the
// process lifetime.
type Catalog struct {
	tiers []models.RewardTier
}

// NewCatalog validates that unlock thresholds are strictly increasing in
// catalog order — the unlock and next-tier queries depend on it.
func NewCatalog(tiers []models.RewardTier) (*Catalog, error) {
	if len(tiers) == 0 {
		return nil, fmt.Errorf("reward catalog must not be empty")
	}
	for i := 1; i < len(tiers); i++ {
		if tiers[i].MinValue <= tiers[i-1].MinValue {
			return nil, fmt.Errorf("reward catalog thresholds must be strictly increasing: tier %d (%d) <= tier %d (%d)",
				i, tiers[i].MinValue, i-1, tiers[i-1].MinValue)
		}
	}
	out := make([]models.RewardTier, len(tiers))
	copy(out, tiers)
	return &Catalog{tiers: out}, nil
}

// Tiers returns the full catalog in order.
func (c *Catalog) Tiers() []models.RewardTier {
	out := make([]models.RewardTier, len(c.tiers))
	copy(out, c.tiers)
	return out
}

// UnlockedTiers returns every tier whose threshold the accumulated reward
// value has reached, in catalog order.
func (c *Catalog) UnlockedTiers(value int64) []models.RewardTier {
	var out []models.RewardTier
	for _, t := range c.tiers {
		if t.MinValue <= value {
			out = append(out, t)
		}
	}
	return out
}

// NextTier returns the first tier still locked at the given value, or nil
// once the value exceeds every threshold.
func (c *Catalog) NextTier(value int64) *models.RewardTier {
	for _, t := range c.tiers {
		if t.MinValue > value {
			tier := t
			return &tier
		}
	}
	return nil
}
