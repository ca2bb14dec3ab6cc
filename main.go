package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"challenge-reward-system/engine"
	"challenge-reward-system/handlers"
	"challenge-reward-system/middleware"
	"challenge-reward-system/models"
	"challenge-reward-system/services"
	"challenge-reward-system/utils"
	"challenge-reward-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // 20MB — session photos only
	})

	// 🔐 GLOBAL: Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, User-Agent, Cache-Control, X-Session-Token, X-Service-Token, X-Device-ID",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	if err := utils.InitR2(); err != nil {
		log.Fatal("failed to initialize R2 client:", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.Challenge{},
		&models.GymSession{},
		&models.ChallengeUser{},
		&models.StakePaymentMirror{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if err := utils.EnsureUploadDir(); err != nil {
		log.Fatal("failed to ensure upload dir:", err)
	}

	// The reward catalog is static configuration: constructed once here,
	// validated, and injected everywhere it is read.
	catalog, err := engine.NewCatalog(models.DefaultRewardCatalog)
	if err != nil {
		log.Fatal("invalid reward catalog:", err)
	}

	aiGatewayURL := os.Getenv("AI_GATEWAY_URL")
	if aiGatewayURL == "" {
		log.Fatal("AI_GATEWAY_URL environment variable not set")
	}
	aiGatewayKey := os.Getenv("AI_GATEWAY_KEY")
	if aiGatewayKey == "" {
		log.Fatal("AI_GATEWAY_KEY environment variable not set")
	}

	syncServiceURL := os.Getenv("SYNC_SERVICE_URL")
	if syncServiceURL == "" {
		log.Fatal("SYNC_SERVICE_URL environment variable not set")
	}
	serviceToken := os.Getenv("CHALLENGE_SERVICE_TOKEN")
	if serviceToken == "" {
		log.Fatal("CHALLENGE_SERVICE_TOKEN environment variable not set")
	}

	authServiceURL := os.Getenv("AUTH_SERVICE_URL")
	if authServiceURL == "" {
		log.Fatal("AUTH_SERVICE_URL environment variable not set")
	}

	verifier := services.NewVerifierClient(aiGatewayURL, aiGatewayKey)
	authClient := services.NewAuthServiceClient(authServiceURL, serviceToken)

	challengeService := services.NewChallengeService(db, catalog)
	sessionService := services.NewSessionService(db, verifier, challengeService)
	rewardService := services.NewRewardService(db, catalog)

	syncWorker := workers.NewChallengeUserSyncWorker(db, syncServiceURL, "/api/v1/public/profiles", serviceToken)

	paymentSyncClient := workers.NewPaymentSyncClient(db)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go workers.PollStakePayments(ctx, paymentSyncClient, 30*time.Second)

	go func() {
		log.Println("Starting Challenge User Sync Worker...")
		syncWorker.Start(ctx)
	}()

	challengeService.StartLifecycleScheduler()

	handlers.SetupChallengeRoutes(app, challengeService, sessionService)
	handlers.SetupRewardRoutes(app, rewardService, sessionService, authClient)

	app.Static("/uploads", "./uploads")

	go func() {
		if err := app.Listen(":5300"); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Println("✅ Server running on http://localhost:5300")
	log.Println("✅ Challenge User Sync Worker running")
	log.Println("✅ Stake payment polling running (every 30s)")
	log.Println("✅ Lifecycle scheduler running (hourly sweep)")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
}
