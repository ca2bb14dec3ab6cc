// services/challenge_service.go
package services

import (
	"errors"
	"log"
	"time"

	"challenge-reward-system/engine"
	"challenge-reward-system/models"
	"challenge-reward-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Stake bounds enforced at the API edge. The engine validates the structural
// ranges; the service additionally pins the stake to what the setup UI offers.
const (
	MinBetAmount = 10
	MaxBetAmount = 500
)

type ChallengeService struct {
	DB      *gorm.DB
	Catalog *engine.Catalog
}

func NewChallengeService(db *gorm.DB, catalog *engine.Catalog) *ChallengeService {
	return &ChallengeService{DB: db, Catalog: catalog}
}

// CreateChallenge creates a commitment contract for the authenticated user.
// Odds, coins and reward value are computed exactly once here and never
// recomputed for the lifetime of the challenge.
func (s *ChallengeService) CreateChallenge(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "User ID not found in context"})
	}

	var req struct {
		SessionsPerWeek int     `json:"sessions_per_week" validate:"required,min=1,max=7"`
		DurationMonths  int     `json:"duration_months" validate:"required,min=1,max=12"`
		BetAmount       float64 `json:"bet_amount" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := engine.ValidateParams(req.BetAmount, req.DurationMonths, req.SessionsPerWeek); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.BetAmount < MinBetAmount || req.BetAmount > MaxBetAmount {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Bet amount must be between 10 and 500"})
	}

	// One active challenge per user
	var existing models.Challenge
	err := s.DB.Where("external_user_id = ? AND status = ?", userID, models.ChallengeStatusActive).
		First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "An active challenge already exists"})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	odds := engine.OddsMultiplier(req.SessionsPerWeek, req.DurationMonths)
	now := time.Now()

	challenge := &models.Challenge{
		ID:              uuid.NewString(),
		ExternalUserID:  userID,
		SessionsPerWeek: req.SessionsPerWeek,
		DurationMonths:  req.DurationMonths,
		BetAmount:       req.BetAmount,
		OddsMultiplier:  odds,
		CoinsReward:     engine.CoinsReward(req.BetAmount, req.DurationMonths, req.SessionsPerWeek),
		RewardValue:     engine.RewardValue(req.BetAmount, req.DurationMonths, odds),
		TotalTarget:     engine.TotalTarget(req.SessionsPerWeek, req.DurationMonths),
		Status:          models.ChallengeStatusActive,
		StartDate:       now,
		EndDate:         now.AddDate(0, req.DurationMonths, 0),
	}

	if err := s.DB.Create(challenge).Error; err != nil {
		log.Printf("DB Error creating challenge: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create challenge"})
	}

	return c.Status(fiber.StatusCreated).JSON(challenge)
}

// QuoteChallenge previews the derived numbers for a parameter combination
// without persisting anything — backs the setup sliders.
func (s *ChallengeService) QuoteChallenge(c *fiber.Ctx) error {
	sessions := c.QueryInt("sessions_per_week", 3)
	months := c.QueryInt("duration_months", 3)
	bet := c.QueryFloat("bet_amount", 50)

	if err := engine.ValidateParams(bet, months, sessions); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	odds := engine.OddsMultiplier(sessions, months)
	return c.JSON(fiber.Map{
		"sessions_per_week": sessions,
		"duration_months":   months,
		"bet_amount":        bet,
		"odds_multiplier":   odds,
		"coins_reward":      engine.CoinsReward(bet, months, sessions),
		"reward_value":      engine.RewardValue(bet, months, odds),
		"total_target":      engine.TotalTarget(sessions, months),
		"total_stake":       bet * float64(months),
	})
}

// GetActiveChallenge returns the user's current active challenge, if any.
func (s *ChallengeService) GetActiveChallenge(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var challenge models.Challenge
	if err := s.DB.Where("external_user_id = ? AND status = ?", userID, models.ChallengeStatusActive).
		First(&challenge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No active challenge"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	return c.JSON(challenge)
}

// GetChallengeByID returns one challenge owned by the caller.
func (s *ChallengeService) GetChallengeByID(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid challenge ID"})
	}

	var challenge models.Challenge
	if err := s.DB.Where("id = ? AND external_user_id = ?", id, userID).First(&challenge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Challenge not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	return c.JSON(challenge)
}

// GetDashboard assembles the derived view for one challenge: completion,
// streak, remaining sessions and the current-week day map. Everything is
// recomputed idempotently from the session ledger on each call.
func (s *ChallengeService) GetDashboard(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid challenge ID"})
	}

	var challenge models.Challenge
	if err := s.DB.Where("id = ? AND external_user_id = ?", id, userID).First(&challenge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Challenge not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	var sessions []models.GymSession
	if err := s.DB.Where("challenge_id = ?", challenge.ID).Find(&sessions).Error; err != nil {
		log.Printf("DB Error fetching sessions for challenge %s: %v", challenge.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch sessions"})
	}

	now := time.Now()
	ledger := engine.NewLedger(sessions)
	approved := ledger.ApprovedCount()
	ordered := ledger.MostRecentFirst()

	// Monday-first week map for the dashboard calendar row
	weekday := int(now.Weekday()+6) % 7 // Monday = 0
	monday := now.AddDate(0, 0, -weekday)
	week := make([]fiber.Map, 7)
	for i := 0; i < 7; i++ {
		day := monday.AddDate(0, 0, i)
		week[i] = fiber.Map{
			"date":  day.Format("2006-01-02"),
			"done":  ledger.ApprovedOnDay(day),
			"today": i == weekday,
		}
	}

	paymentStatus := "unknown"
	if payments, err := workers.GetPaymentsForChallenge(s.DB, challenge.ID); err == nil && len(payments) > 0 {
		paymentStatus = payments[len(payments)-1].Status
	}

	var userView fiber.Map
	var owner models.ChallengeUser
	if err := s.DB.Where("external_user_id = ?", userID).First(&owner).Error; err == nil {
		userView = UserDisplay(&owner)
	}

	return c.JSON(fiber.Map{
		"challenge":          challenge,
		"user":               userView,
		"approved_sessions":  approved,
		"total_target":       challenge.TotalTarget,
		"completion_percent": engine.CompletionPercent(approved, challenge.TotalTarget),
		"remaining_sessions": engine.RemainingSessions(approved, challenge.TotalTarget),
		"streak":             engine.CurrentStreak(ordered, now),
		"week":               week,
		"payment_status":     paymentStatus,
	})
}

// UserDisplay shapes the locally mirrored profile fields the dashboard
// shows. A missing mirror (profile not yet synced) renders as null rather
// than an empty object.
func UserDisplay(u *models.ChallengeUser) fiber.Map {
	if u == nil {
		return nil
	}
	return fiber.Map{
		"external_user_id":    u.ExternalUserID,
		"username":            u.Username,
		"profile_picture_url": u.ProfilePictureURL,
		"first_name":          u.FirstName,
		"last_name":           u.LastName,
	}
}

// EvaluateChallenge applies the lifecycle decision function to one challenge
// and persists a transition when one is due. Re-evaluating a terminal
// challenge is a no-op. Shared by the session flow and the scheduler sweep.
func (s *ChallengeService) EvaluateChallenge(challenge *models.Challenge, now time.Time) error {
	if challenge.Terminal() {
		return nil
	}

	var approved int64
	if err := s.DB.Model(&models.GymSession{}).
		Where("challenge_id = ? AND approved = ?", challenge.ID, true).
		Count(&approved).Error; err != nil {
		return err
	}

	decision := engine.EvaluateLifecycle(challenge, int(approved), now)
	if !decision.Transition {
		return nil
	}

	challenge.Status = decision.Status
	switch decision.Status {
	case models.ChallengeStatusCompleted:
		challenge.CompletedAt = &now
	case models.ChallengeStatusFailed:
		challenge.FailedAt = &now
	}

	if err := s.DB.Save(challenge).Error; err != nil {
		return err
	}

	log.Printf("🏁 Challenge %s → %s (approved=%d/%d)", challenge.ID, decision.Status, approved, challenge.TotalTarget)
	return nil
}
