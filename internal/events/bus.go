package events

import (
	"context"
	"encoding/json"
	"sync"
)

// EventType represents the type of event
type EventType string

const (
	EventInboundMessage    EventType = "inbound_message"
	EventOutboundMessage   EventType = "outbound_message"
	EventRepromptScheduled EventType = "reprompt_scheduled"
)

// Event is one entry in the message-activity feed.
type Event struct {
	Type EventType   `json:"type"`
	Data interface{} `json:"data"`
}

// MessageEvent is the payload for inbound and outbound message events.
type MessageEvent struct {
	UserID string `json:"user_id"`
	Body   string `json:"body"`
}

// EventBus manages SSE subscriptions and broadcasts message-activity events.
type EventBus struct {
	subscribers map[string]chan Event
	mu          sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[string]chan Event),
	}
}

// Subscribe adds a new subscriber and returns a channel for receiving events
func (eb *EventBus) Subscribe(ctx context.Context, id string) <-chan Event {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	// Buffered so a slow reader does not block publishers
	ch := make(chan Event, 10)
	eb.subscribers[id] = ch

	go func() {
		<-ctx.Done()
		eb.Unsubscribe(id)
	}()

	return ch
}

// Unsubscribe removes a subscriber
func (eb *EventBus) Unsubscribe(id string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if ch, exists := eb.subscribers[id]; exists {
		close(ch)
		delete(eb.subscribers, id)
	}
}

// Publish sends an event to all subscribers without blocking; events to full
// subscriber channels are dropped.
func (eb *EventBus) Publish(eventType EventType, data interface{}) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	event := Event{
		Type: eventType,
		Data: data,
	}

	for _, ch := range eb.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

// PublishInbound publishes an inbound message event.
func (eb *EventBus) PublishInbound(userID, body string) {
	eb.Publish(EventInboundMessage, MessageEvent{UserID: userID, Body: body})
}

// PublishOutbound publishes an outbound message event.
func (eb *EventBus) PublishOutbound(userID, body string) {
	eb.Publish(EventOutboundMessage, MessageEvent{UserID: userID, Body: body})
}

// PublishRepromptScheduled publishes an idle-nudge scheduling event.
func (eb *EventBus) PublishRepromptScheduled(userID string) {
	eb.Publish(EventRepromptScheduled, map[string]string{"user_id": userID})
}

// FormatSSE formats an event as a Server-Sent Event frame.
func FormatSSE(event Event) (string, error) {
	data, err := json.Marshal(event.Data)
	if err != nil {
		return "", err
	}

	return "event: " + string(event.Type) + "\ndata: " + string(data) + "\n\n", nil
}
