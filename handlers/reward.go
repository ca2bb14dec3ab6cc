// handlers/reward.go
package handlers

import (
	"challenge-reward-system/middleware"
	"challenge-reward-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupRewardRoutes(app *fiber.App, rewardService *services.RewardService, sessionService *services.SessionService, authClient *services.AuthServiceClient) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/rewards", rewardService.GetRewardCatalog)
	secured.Get("/rewards/next", rewardService.GetNextTier)

	// SSE stream authenticates from query params, not gateway headers
	app.Get("/user/sessions/stream", middleware.SSEAuthMiddleware(authClient), sessionService.StreamUserSessionsSSE)
}
