package http

import (
	"bufio"
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/altosdelrio/guest-concierge/internal/adapters/sheets"
	"github.com/altosdelrio/guest-concierge/internal/adapters/whatsapp"
	"github.com/altosdelrio/guest-concierge/internal/events"
)

// Handler handles HTTP requests for the WhatsApp webhook and the debug surface
type Handler struct {
	verifyToken string
	bot         BotServiceHandler
	directory   DirectoryPreviewer
	eventBus    *events.EventBus
}

// BotServiceHandler defines the interface for the reply dispatcher
type BotServiceHandler interface {
	HandleIncomingMessage(from string, message string) error
}

// DirectoryPreviewer defines the interface for the debug unit preview
type DirectoryPreviewer interface {
	Preview(ctx context.Context, limit int) ([]sheets.UnitSummary, error)
}

// NewHandler creates a new HTTP handler
func NewHandler(verifyToken string, bot BotServiceHandler, directory DirectoryPreviewer, eventBus *events.EventBus) *Handler {
	verifyToken = strings.TrimSpace(verifyToken)
	if verifyToken == "" {
		slog.Warn("WHATSAPP_VERIFY_TOKEN is not set; webhook verification will reject everything")
	}

	return &Handler{
		verifyToken: verifyToken,
		bot:         bot,
		directory:   directory,
		eventBus:    eventBus,
	}
}

// VerifyWebhook handles GET requests for webhook subscription verification. Meta sends
// hub.mode=subscribe with the configured token and expects the challenge echoed back
// as plain text.
func (h *Handler) VerifyWebhook(c *fiber.Ctx) error {
	mode := c.Query("hub.mode")
	token := strings.TrimSpace(c.Query("hub.verify_token"))
	challenge := c.Query("hub.challenge")

	if mode != "subscribe" || token == "" || token != h.verifyToken {
		slog.Warn("webhook verification rejected", "mode", mode)
		return c.Status(http.StatusForbidden).SendString("Invalid verify token")
	}

	slog.Info("webhook verification succeeded")
	return c.SendString(challenge)
}

// ReceiveMessage handles POST requests for incoming WhatsApp messages. The upstream
// provider retries deliveries that are not acknowledged quickly, so this endpoint
// always answers 200 and the reply pipeline runs after the ack.
func (h *Handler) ReceiveMessage(c *fiber.Ctx) error {
	var payload whatsapp.WebhookPayload
	if err := c.BodyParser(&payload); err != nil {
		slog.Warn("discarding malformed webhook payload", "error", err)
		return ackOK(c)
	}

	sender, text := whatsapp.ExtractMessage(&payload)
	if sender == "" || text == "" {
		// Status callbacks and unsupported message types land here; nothing to do.
		return ackOK(c)
	}

	deliveryID := uuid.New().String()
	slog.Info("inbound message accepted", "delivery_id", deliveryID, "from", sender)

	go func(sender, text string) {
		if err := h.bot.HandleIncomingMessage(sender, text); err != nil {
			slog.Error("failed to handle message", "delivery_id", deliveryID, "error", err)
		}
	}(sender, text)

	return ackOK(c)
}

// PreviewUnits handles GET requests for the debug view of the unit directory.
func (h *Handler) PreviewUnits(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)

	units, err := h.directory.Preview(c.Context(), limit)
	if err != nil {
		slog.Warn("unit directory preview failed", "error", err)
		return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "unit directory unavailable",
		})
	}

	return c.JSON(fiber.Map{
		"count": len(units),
		"units": units,
	})
}

// StreamEvents handles Server-Sent Events for the live message-activity feed.
// GET /debug/events
func (h *Handler) StreamEvents(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	ctx, cancel := context.WithCancel(context.Background())

	subscriberID := uuid.New().String()
	eventChan := h.eventBus.Subscribe(ctx, subscriberID)

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer cancel()

		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case event, ok := <-eventChan:
				if !ok {
					return
				}

				frame, err := events.FormatSSE(event)
				if err != nil {
					slog.Warn("failed to format SSE event", "error", err)
					continue
				}
				if _, err := w.WriteString(frame); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}

			case <-ticker.C:
				if _, err := w.WriteString(": heartbeat\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	})

	return nil
}

func ackOK(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(fiber.Map{"status": "ok"})
}
