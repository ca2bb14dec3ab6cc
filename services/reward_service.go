// services/reward_service.go
package services

import (
	"log"
	"strconv"

	"challenge-reward-system/engine"
	"challenge-reward-system/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type RewardService struct {
	DB      *gorm.DB
	Catalog *engine.Catalog
}

func NewRewardService(db *gorm.DB, catalog *engine.Catalog) *RewardService {
	return &RewardService{DB: db, Catalog: catalog}
}

// accruedRewardValue sums the configured reward values of the user's
// completed challenges. Active and failed challenges contribute nothing —
// the reward economy only pays out on kept commitments.
func (s *RewardService) accruedRewardValue(userID string) (int64, error) {
	var total int64
	err := s.DB.Model(&models.Challenge{}).
		Where("external_user_id = ? AND status = ?", userID, models.ChallengeStatusCompleted).
		Select("COALESCE(SUM(reward_value), 0)").
		Scan(&total).Error
	return total, err
}

// GetRewardCatalog returns the full tier list annotated with unlocked/next
// flags for the caller's accrued reward value. An explicit ?value= overrides
// the accrual, which backs the setup preview ("what would this challenge
// unlock").
func (s *RewardService) GetRewardCatalog(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var value int64
	if raw := c.Query("value"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid value parameter"})
		}
		value = v
	} else {
		v, err := s.accruedRewardValue(userID)
		if err != nil {
			log.Printf("DB Error computing accrued reward value for %s: %v", userID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute reward value"})
		}
		value = v
	}

	unlocked := s.Catalog.UnlockedTiers(value)
	next := s.Catalog.NextTier(value)

	unlockedCodes := make(map[string]bool, len(unlocked))
	for _, t := range unlocked {
		unlockedCodes[t.Code] = true
	}

	tiers := make([]fiber.Map, 0, len(s.Catalog.Tiers()))
	for _, t := range s.Catalog.Tiers() {
		tiers = append(tiers, fiber.Map{
			"rank":      t.Rank,
			"code":      t.Code,
			"name":      t.Name,
			"brand":     t.Brand,
			"emoji":     t.Emoji,
			"min_value": t.MinValue,
			"unlocked":  unlockedCodes[t.Code],
			"next":      next != nil && next.Code == t.Code,
		})
	}

	return c.JSON(fiber.Map{
		"reward_value": value,
		"tiers":        tiers,
	})
}

// GetNextTier returns just the next locked tier for the caller, or an
// explicit null once every tier is unlocked.
func (s *RewardService) GetNextTier(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	value, err := s.accruedRewardValue(userID)
	if err != nil {
		log.Printf("DB Error computing accrued reward value for %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute reward value"})
	}

	return c.JSON(fiber.Map{
		"reward_value": value,
		"next_tier":    s.Catalog.NextTier(value),
	})
}
