package models

import "github.com/gosimple/slug"

// RewardTier is one entry of the reward catalog. The catalog is static
// process-wide configuration: it is defined here as explicit seed data and
// handed to engine.NewCatalog at startup — redefining tiers requires a
// restart.
type RewardTier struct {
	Rank     int    `json:"rank"`
	Code     string `json:"code"` // stable key, slugged from name+brand
	Name     string `json:"name"`
	Brand    string `json:"brand"`
	Emoji    string `json:"emoji"`
	MinValue int64  `json:"min_value"` // unlock threshold, EUR
}

// NewRewardTier fills in the slugged code for a catalog entry
func NewRewardTier(rank int, name, brand, emoji string, minValue int64) RewardTier {
	return RewardTier{
		Rank:     rank,
		Code:     slug.Make(name + " " + brand),
		Name:     name,
		Brand:    brand,
		Emoji:    emoji,
		MinValue: minValue,
	}
}

// DefaultRewardCatalog is the production tier list, ordered by ascending
// unlock threshold.
var DefaultRewardCatalog = []RewardTier{
	NewRewardTier(1, "T-Shirt Sport", "Nike", "👕", 30),
	NewRewardTier(2, "Shaker Premium", "BlenderBottle", "🥤", 50),
	NewRewardTier(3, "Brassière / Débardeur", "Under Armour", "🏋️", 80),
	NewRewardTier(4, "Chaussures de Training", "Adidas", "👟", 120),
	NewRewardTier(5, "Tenue Complète", "Nike", "🔥", 200),
	NewRewardTier(6, "Pack Premium", "Multi-marques", "🏆", 350),
}
