package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ngtkana/senseki-db/handlers"
	"github.com/ngtkana/senseki-db/middleware"
	"github.com/ngtkana/senseki-db/models"
	"github.com/ngtkana/senseki-db/services"
	"github.com/ngtkana/senseki-db/utils"
	"github.com/ngtkana/senseki-db/workers"

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
		AppName: "senseki-db",
	})

	app.Use(middleware.RequestIDMiddleware())

	// Load allowed origins from environment variable
	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		allowedOriginsEnv = "http://localhost:8080"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(allowedOriginsList, ","),
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, X-Request-ID",
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	// TranslateError lets the match-order conflict surface as
	// gorm.ErrDuplicatedKey so creation can retry with a fresh order.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.Character{},
		&models.Session{},
		&models.Match{},
		&models.GSPRecord{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if err := services.SeedCharacters(db); err != nil {
		log.Fatal("failed to seed characters:", err)
	}

	characterService := services.NewCharacterService(db)
	sessionService := services.NewSessionService(db)
	matchService := services.NewMatchService(db)
	gspService := services.NewGSPService(db)
	exportService := services.NewExportService(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Optional remote roster feed (DLC fighters, name fixes)
	if rosterURL := os.Getenv("ROSTER_SYNC_URL"); rosterURL != "" {
		rosterWorker := workers.NewRosterSyncWorker(db, rosterURL, utils.HTTPClient)
		rosterWorker.Start(ctx)
	}

	matchService.StartOrderAuditScheduler()

	if err := utils.InitObjectStore(); err != nil {
		log.Fatal("failed to initialize object store:", err)
	}
	if utils.ObjectStoreEnabled() {
		exportService.StartExportScheduler()
		handlers.SetupExportRoutes(app, exportService)
		log.Println("✅ Session export enabled (daily snapshot)")
	}

	handlers.SetupCharacterRoutes(app, characterService)
	handlers.SetupSessionRoutes(app, sessionService, matchService, gspService)
	handlers.SetupMatchRoutes(app, matchService)
	handlers.SetupGSPRoutes(app, gspService)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":3000"
	}

	go func() {
		if err := app.Listen(addr); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on %s", addr)

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
