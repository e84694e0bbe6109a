package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/AmmarAssaf/renderbot/engine"
	"github.com/AmmarAssaf/renderbot/handlers"
	"github.com/AmmarAssaf/renderbot/middleware"
	"github.com/AmmarAssaf/renderbot/models"
	"github.com/AmmarAssaf/renderbot/services"
	"github.com/AmmarAssaf/renderbot/transport"
	"github.com/AmmarAssaf/renderbot/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		log.Fatal("BOT_TOKEN environment variable not set")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	ownerID := envInt64("OWNER_USER_ID", 0)
	if ownerID == 0 {
		log.Fatal("OWNER_USER_ID environment variable not set")
	}

	// The allow-list: identities that may register without a referral
	// code. The owner is always on it.
	allowed := []int64{ownerID}
	if extra := envInt64("TELEGRAM_OWNER_ID", 0); extra != 0 {
		allowed = append(allowed, extra)
	}

	db, err := openWithRetry(func() (*gorm.DB, error) {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}, dbConnectBackoff)
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}
	log.Println("✅ Database connection established")

	if err := db.AutoMigrate(
		&models.UserProfile{},
		&models.UserLink{},
		&models.UserPayment{},
		&models.RegistrationProgress{},
		&models.CommentTask{},
		&models.VerificationTask{},
		&models.UserReward{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}
	log.Println("✅ Database migrations completed")

	client := transport.NewClient(token)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	me, err := client.GetMe(ctx)
	if err != nil {
		log.Fatal("failed to reach the bot API:", err)
	}
	log.Printf("✅ Authorized as @%s", me.Username)

	referrals := services.NewReferralService(db)
	progress := services.NewProgressService(db)
	admission := services.NewAdmissionService(db, referrals, ownerID, allowed)
	registration := services.NewRegistrationService(db, referrals, progress)
	ledger := services.NewLedgerService(db)

	eng := engine.New(progress, referrals, admission, registration, ledger, client, me.Username)

	retention := services.NewRetentionService(db,
		time.Duration(envInt64("CHECKPOINT_TTL_HOURS", 0))*time.Hour,
		time.Duration(envInt64("PENDING_TASK_TTL_HOURS", 0))*time.Hour,
	)
	retention.Start()
	defer retention.Stop()

	mode := strings.ToLower(os.Getenv("MODE"))
	if mode == "webhook" {
		runWebhook(ctx, eng)
		return
	}

	poller := workers.NewUpdatePoller(client, eng)
	poller.Run(ctx)
	log.Println("✅ Shutdown complete")
}

// runWebhook serves updates over HTTP. The webhook itself must be
// registered with the bot API separately, pointing at /webhook with the
// same secret token.
func runWebhook(ctx context.Context, eng *engine.Engine) {
	app := fiber.New(fiber.Config{
		BodyLimit: 1 * 1024 * 1024,
	})

	webhook := handlers.NewWebhookHandler(eng)
	app.Get("/healthz", webhook.HandleHealth)
	app.Post("/webhook", middleware.WebhookAuth(os.Getenv("WEBHOOK_SECRET")), webhook.HandleUpdate)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	go func() {
		<-ctx.Done()
		log.Println("🛑 Shutting down HTTP server")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("❌ server shutdown: %v", err)
		}
	}()

	log.Printf("🚀 Webhook server listening on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatal("failed to start server:", err)
	}
	log.Println("✅ Shutdown complete")
}

const (
	dbConnectAttempts = 3
	dbConnectBackoff  = 5 * time.Second
)

// openWithRetry tolerates a database that is still coming up at boot.
// It retries the connection with a fixed backoff before giving up.
func openWithRetry(open func() (*gorm.DB, error), backoff time.Duration) (*gorm.DB, error) {
	var db *gorm.DB
	var err error
	for attempt := 1; attempt <= dbConnectAttempts; attempt++ {
		db, err = open()
		if err == nil {
			return db, nil
		}
		log.Printf("⚠️ database connection attempt %d/%d failed: %v", attempt, dbConnectAttempts, err)
		if attempt < dbConnectAttempts {
			time.Sleep(backoff)
		}
	}
	return nil, err
}

func envInt64(key string, fallback int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Fatalf("invalid %s value %q", key, raw)
	}
	return v
}
