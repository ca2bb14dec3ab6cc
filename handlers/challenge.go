// handlers/challenge.go
package handlers

import (
	"challenge-reward-system/middleware"
	"challenge-reward-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupChallengeRoutes(app *fiber.App, challengeService *services.ChallengeService, sessionService *services.SessionService) {
	// 🔓 Public route — no user context, but still requires Gateway auth
	app.Get("/challenges/quote", challengeService.QuoteChallenge)

	// 🔐 Secured routes — require user context (userID, roles)
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Post("/challenges", challengeService.CreateChallenge)
	secured.Get("/challenges/active", challengeService.GetActiveChallenge)
	secured.Get("/challenges/:id", challengeService.GetChallengeByID)
	secured.Get("/challenges/:id/dashboard", challengeService.GetDashboard)

	secured.Post("/challenges/:id/sessions", sessionService.SubmitSession)
	secured.Get("/challenges/:id/sessions", sessionService.ListSessions)
}
