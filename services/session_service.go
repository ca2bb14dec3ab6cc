// services/session_service.go
package services

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"path/filepath"
	"time"

	"challenge-reward-system/models"
	"challenge-reward-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionService struct {
	DB         *gorm.DB
	Verifier   *VerifierClient
	Challenges *ChallengeService
}

func NewSessionService(db *gorm.DB, verifier *VerifierClient, challenges *ChallengeService) *SessionService {
	return &SessionService{DB: db, Verifier: verifier, Challenges: challenges}
}

// SubmitSession handles one visit attestation attempt: store the photo, ask
// the attestation gateway for a verdict, record the session, then re-evaluate
// the challenge lifecycle. The session row is written whether or not the
// verdict approved — rejected attempts stay visible to the user — but only
// approved rows ever count toward progress.
func (s *SessionService) SubmitSession(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	challengeID := c.Params("id")
	if _, err := uuid.Parse(challengeID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid challenge ID"})
	}

	var challenge models.Challenge
	if err := s.DB.Where("id = ? AND external_user_id = ?", challengeID, userID).First(&challenge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Challenge not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	if challenge.Terminal() {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Challenge is no longer active"})
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Photo file is required"})
	}

	key := fmt.Sprintf("sessions/%s/%s%s", challengeID, uuid.NewString(), filepath.Ext(fileHeader.Filename))
	photoURL, err := s.storePhoto(fileHeader, key)
	if err != nil {
		log.Printf("Failed to store session photo: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store photo"})
	}

	verdict, err := s.Verifier.VerifyPhoto(c.Context(), photoURL)
	if err != nil {
		// No verdict means no session: the attempt simply never reaches the
		// ledger, and the user can retry.
		log.Printf("Attestation failed for challenge %s: %v", challengeID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Photo verification unavailable, try again"})
	}

	session := &models.GymSession{
		ID:             uuid.NewString(),
		ChallengeID:    challengeID,
		ExternalUserID: userID,
		Approved:       verdict.Approved,
		Confidence:     verdict.Confidence,
		Reason:         verdict.Reason,
		PhotoURL:       photoURL,
		VerifiedAt:     time.Now(),
	}
	if err := s.DB.Create(session).Error; err != nil {
		log.Printf("DB Error creating gym session: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record session"})
	}

	if verdict.Approved {
		// Completing the target mid-challenge transitions immediately rather
		// than waiting for the scheduler sweep.
		if err := s.Challenges.EvaluateChallenge(&challenge, session.VerifiedAt); err != nil {
			log.Printf("Lifecycle evaluation failed for challenge %s: %v", challengeID, err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"session":          session,
		"challenge_status": challenge.Status,
	})
}

// storePhoto writes the photo to R2 when configured, or to the local uploads
// directory otherwise (dev setups run without R2 credentials).
func (s *SessionService) storePhoto(fileHeader *multipart.FileHeader, key string) (string, error) {
	if utils.R2Enabled() {
		return utils.UploadFileToR2(fileHeader, key)
	}
	destPath := utils.GetUploadPath(key)
	if err := utils.SaveFile(fileHeader, destPath); err != nil {
		return "", err
	}
	return "/uploads/" + key, nil
}

// ListSessions returns all sessions for a challenge, newest first.
func (s *SessionService) ListSessions(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	challengeID := c.Params("id")
	if _, err := uuid.Parse(challengeID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid challenge ID"})
	}

	var sessions []models.GymSession
	if err := s.DB.Where("challenge_id = ? AND external_user_id = ?", challengeID, userID).
		Order("verified_at DESC").
		Find(&sessions).Error; err != nil {
		log.Printf("DB Error fetching sessions: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch sessions"})
	}

	return c.JSON(sessions)
}

// StreamUserSessionsSSE streams newly verified sessions for the authenticated
// user in real time, so the dashboard updates without polling.
func (s *SessionService) StreamUserSessionsSSE(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no") // nginx

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()

		var lastMaxCreatedAt time.Time

		var latest models.GymSession
		if err := s.DB.
			Where("external_user_id = ?", userID).
			Order("created_at DESC").
			First(&latest).Error; err == nil {
			lastMaxCreatedAt = latest.CreatedAt
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("SSE init error for user %s: %v", userID, err)
		}

		// Initial keepalive (comment event)
		w.WriteString(":\n\n")
		w.Flush()

		for {
			select {
			case <-ticker.C:
				var newSessions []models.GymSession

				err := s.DB.
					Where("external_user_id = ?", userID).
					Where("created_at > ?", lastMaxCreatedAt).
					Order("created_at ASC").
					Find(&newSessions).Error
				if err != nil {
					log.Printf("SSE query error for user %s: %v", userID, err)
					continue
				}

				if len(newSessions) == 0 {
					continue
				}

				lastMaxCreatedAt = newSessions[len(newSessions)-1].CreatedAt

				for _, sess := range newSessions {
					payload, _ := json.Marshal(sess)
					fmt.Fprintf(w, "event: session\ndata: %s\n\n", payload)
				}

				if err := w.Flush(); err != nil {
					// Client disconnected
					return
				}

			case <-c.Context().Done():
				return
			}
		}
	})

	return nil
}
