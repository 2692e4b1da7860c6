package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/altosdelrio/guest-concierge/internal/adapters/genai"
	"github.com/altosdelrio/guest-concierge/internal/adapters/http"
	"github.com/altosdelrio/guest-concierge/internal/adapters/memory"
	redisstore "github.com/altosdelrio/guest-concierge/internal/adapters/redis"
	"github.com/altosdelrio/guest-concierge/internal/adapters/sheets"
	"github.com/altosdelrio/guest-concierge/internal/adapters/whatsapp"
	"github.com/altosdelrio/guest-concierge/internal/config"
	"github.com/altosdelrio/guest-concierge/internal/core"
	"github.com/altosdelrio/guest-concierge/internal/events"
	"github.com/altosdelrio/guest-concierge/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	// Conversation state: Redis when configured, in-process map otherwise
	var states core.StateStore
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}
		if cfg.RedisPassword != "" {
			redisOpts.Password = cfg.RedisPassword
		}

		rdb := redis.NewClient(redisOpts)
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		log.Println("✓ Redis connection established")

		states = redisstore.NewStore(rdb)
	} else {
		log.Println("✓ Using in-memory conversation state store")
		states = memory.NewStore()
	}

	// Unit directory (Google Sheets)
	creds, err := sheets.ResolveCredentials(cfg.GoogleCredentialsJSON, cfg.GoogleCredentialsFile)
	if err != nil {
		log.Fatalf("Failed to resolve Google credentials: %v", err)
	}
	directory, err := sheets.NewDirectory(ctx, cfg.SpreadsheetID, cfg.SheetRange, creds)
	if err != nil {
		log.Fatalf("Failed to initialize unit directory: %v", err)
	}

	// Free-text responder
	responder, err := genai.NewResponder(cfg.OpenAIAPIKey)
	if err != nil {
		log.Fatalf("Failed to initialize responder: %v", err)
	}

	// Outbound WhatsApp client
	whatsappClient := whatsapp.NewClient(cfg.WhatsAppPhoneNumberID, cfg.WhatsAppToken)

	// Message-activity event bus (debug feed)
	eventBus := events.NewEventBus()

	// Reply dispatcher
	botService := service.NewBotService(
		directory,
		responder,
		whatsappClient,
		states,
		service.NewSimpleScheduler(),
		cfg.DefaultCountryCode,
	)
	botService.SetEventBus(eventBus)

	// HTTP handler
	httpHandler := http.NewHandler(cfg.WhatsAppVerifyToken, botService, directory, eventBus)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Guest Concierge Bot",
		ServerHeader: "Fiber",
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())

	// Health check route
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"project": "guest-concierge",
		})
	})

	// WhatsApp webhook routes
	app.Get("/webhook", httpHandler.VerifyWebhook)
	app.Post("/webhook", httpHandler.ReceiveMessage)

	// Debug surface
	app.Get("/debug/units", httpHandler.PreviewUnits)
	app.Get("/debug/events", httpHandler.StreamEvents)

	log.Println("✓ Routes registered:")
	log.Println("  GET  /webhook - WhatsApp webhook verification")
	log.Println("  POST /webhook - WhatsApp message webhook")
	log.Println("  GET  /debug/units - unit directory preview")
	log.Println("  GET  /debug/events - message activity feed (SSE)")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.AppPort)
	log.Printf("🚀 Server starting on %s", addr)
	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
