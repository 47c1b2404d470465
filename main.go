package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Jayanth4577/CryptoChuck/handlers"
	"github.com/Jayanth4577/CryptoChuck/models"
	"github.com/Jayanth4577/CryptoChuck/services"
	"github.com/Jayanth4577/CryptoChuck/utils"
	"github.com/Jayanth4577/CryptoChuck/workers"

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
		BodyLimit: 10 * 1024 * 1024, // 10MB, portraits only
	})

	// CORS: load allowed origins from environment variable
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
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, X-Request-ID, User-Agent, Cache-Control, X-Account",
		ExposeHeaders:    "Content-Length, Content-Type, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	adminAccount := os.Getenv("ADMIN_ACCOUNT")
	if adminAccount == "" {
		log.Fatal("ADMIN_ACCOUNT environment variable not set")
	}

	// Portrait storage is optional; the engine runs without it
	if err := utils.InitR2(); err != nil {
		log.Printf("⚠️  R2 disabled: %v", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.Hen{},
		&models.HenListing{},
		&models.BredPair{},
		&models.Battle{},
		&models.Race{},
		&models.RaceEntry{},
		&models.Bet{},
		&models.WalletAccount{},
		&models.GameEvent{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	rng := services.NewSystemRand()
	eventService := services.NewEventService(db)
	walletService := services.NewWalletService(db, eventService)
	henService := services.NewHenService(db, rng, eventService, walletService)
	breedingService := services.NewBreedingService(db, rng, henService, eventService, walletService)
	battleService := services.NewBattleService(db, rng, eventService, walletService)
	racingService := services.NewRacingService(db, rng, eventService, walletService, adminAccount)
	bettingService := services.NewBettingService(db, battleService, eventService, walletService)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	oddsBoard := workers.NewOddsBoard()
	oddsWorker := workers.NewOddsRefreshWorker(db, bettingService, oddsBoard)
	go oddsWorker.PollOdds(ctx, 10*time.Second)

	racingService.StartSettlementScheduler()

	handlers.SetupHenRoutes(app, henService, walletService)
	handlers.SetupBreedingRoutes(app, breedingService)
	handlers.SetupBattleRoutes(app, battleService)
	handlers.SetupRacingRoutes(app, racingService)
	handlers.SetupBettingRoutes(app, bettingService, oddsBoard)
	handlers.SetupEventRoutes(app, eventService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5300"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Println("✅ Race settlement scheduler running (every 15s)")
	log.Println("✅ Odds board worker running (every 10s)")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
	_ = app.Shutdown()
}
