package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/altosdelrio/guest-concierge/internal/core"
	"github.com/altosdelrio/guest-concierge/internal/events"
)

// optionWifi starts the Wi-Fi credential flow. Unlike the other menu options it is
// matched in any state, so a guest can restart the flow mid-conversation.
const optionWifi = "1"

// repromptDelay is how long the bot waits before nudging a guest after a free-text
// answer. The timer is never cancelled: if the guest replies before it fires, the
// nudge is still delivered. That matches observed production behavior and is kept
// as-is rather than silently changed.
const repromptDelay = 60 * time.Second

// BotService is the reply dispatcher: given an inbound message and the guest's
// conversation state it decides the reply, updates state, and schedules any deferred
// follow-up.
type BotService struct {
	Directory   core.UnitDirectory
	Responder   core.Responder
	Sender      core.MessageSender
	States      core.StateStore
	Scheduler   core.Scheduler
	CountryCode string

	eventBus *events.EventBus
}

// NewBotService creates a new bot service.
func NewBotService(directory core.UnitDirectory, responder core.Responder, sender core.MessageSender, states core.StateStore, scheduler core.Scheduler, countryCode string) *BotService {
	return &BotService{
		Directory:   directory,
		Responder:   responder,
		Sender:      sender,
		States:      states,
		Scheduler:   scheduler,
		CountryCode: countryCode,
	}
}

// SetEventBus enables message-activity events for the debug feed.
func (b *BotService) SetEventBus(eventBus *events.EventBus) {
	b.eventBus = eventBus
}

// HandleIncomingMessage processes one inbound WhatsApp message. For any non-empty
// input it sends exactly one reply; collaborator failures are converted into
// user-facing fallback text and never propagate to the caller.
func (b *BotService) HandleIncomingMessage(from string, message string) error {
	ctx := context.Background()

	userID := NormalizePhone(from, b.CountryCode)
	if userID == "" {
		slog.Warn("dropping message with no usable sender id", "from", from)
		return nil
	}

	text := strings.TrimSpace(message)
	if text == "" {
		return nil
	}

	if b.eventBus != nil {
		b.eventBus.PublishInbound(userID, text)
	}

	state, err := b.States.GetOrCreate(ctx, userID)
	if err != nil {
		// Keep answering even when the store is unreachable; a fresh default state
		// still gives the menu-driven paths correct behavior.
		slog.Error("state store unavailable, using fresh state", "user", userID, "error", err)
		state = &core.ConversationState{UserID: userID}
	}

	b.send(ctx, userID, b.dispatch(ctx, userID, text, state))
	return nil
}

// dispatch implements the transition table. The awaiting-apartment branch is checked
// before the numbered menu on purpose: a guest mid-flow typing "2" means apartment 2,
// not the check-in-hours menu item.
func (b *BotService) dispatch(ctx context.Context, userID, text string, state *core.ConversationState) string {
	switch {
	case text == optionWifi:
		if err := b.States.SetAwaiting(ctx, userID, true); err != nil {
			slog.Error("failed to mark guest as awaiting apartment", "user", userID, "error", err)
		}
		return replyWifiPrompt

	case state.AwaitingApartment:
		return b.lookupUnit(ctx, userID, text)

	default:
		if canned, ok := menuReplies[text]; ok {
			return canned
		}
		return b.answerFreeText(ctx, userID, text, state)
	}
}

// lookupUnit resolves the supplied apartment id and ends the lookup flow. The flow is
// cleared on every outcome so the next message starts from idle.
func (b *BotService) lookupUnit(ctx context.Context, userID, apartmentID string) string {
	unit, err := b.Directory.FindUnit(ctx, apartmentID)

	if clearErr := b.States.ClearFlow(ctx, userID); clearErr != nil {
		slog.Error("failed to clear lookup flow", "user", userID, "error", clearErr)
	}

	switch {
	case errors.Is(err, core.ErrUnitNotFound):
		return replyUnitNotFound(apartmentID)
	case err != nil:
		slog.Warn("unit directory lookup failed", "user", userID, "error", err)
		return replyLookupDown
	case unit == nil:
		return replyUnitNotFound(apartmentID)
	default:
		return formatUnitInfo(apartmentID, unit)
	}
}

// answerFreeText asks the responder and, on the first fallback since the last
// completed lookup flow, schedules a one-time idle nudge.
func (b *BotService) answerFreeText(ctx context.Context, userID, question string, state *core.ConversationState) string {
	reply, err := b.Responder.Answer(ctx, question)
	if err != nil {
		slog.Warn("free-text completion failed", "user", userID, "error", err)
		reply = replyFallback
	}

	if state.IdleRepromptCount < 1 {
		if _, err := b.States.IncrementReprompt(ctx, userID); err != nil {
			slog.Error("failed to count idle reprompt", "user", userID, "error", err)
		}
		b.Scheduler.ScheduleAfter(repromptDelay, func() {
			b.send(context.Background(), userID, replyNudge)
		})
		if b.eventBus != nil {
			b.eventBus.PublishRepromptScheduled(userID)
		}
	}

	return reply
}

// send delivers fire-and-forget: failures are logged, never retried, and never affect
// the dispatcher's own state transitions.
func (b *BotService) send(ctx context.Context, userID, body string) {
	if err := b.Sender.SendText(ctx, userID, body); err != nil {
		slog.Warn("failed to deliver reply", "user", userID, "error", err)
		return
	}
	if b.eventBus != nil {
		b.eventBus.PublishOutbound(userID, body)
	}
}
