package core

import (
	"context"
	"time"
)

// StateStore holds per-guest conversation state. Implementations guard their own map
// integrity but do not serialize read-modify-write cycles across messages; two rapid
// messages from the same guest may interleave, which the service accepts.
type StateStore interface {
	// GetOrCreate returns the state for userID, creating a fresh default when none
	// exists yet.
	GetOrCreate(ctx context.Context, userID string) (*ConversationState, error)
	// SetAwaiting flags whether the guest owes us an apartment number.
	SetAwaiting(ctx context.Context, userID string, awaiting bool) error
	// ClearFlow resets the lookup flow: awaiting flag off, reprompt counter zeroed.
	ClearFlow(ctx context.Context, userID string) error
	// IncrementReprompt bumps the idle-nudge counter and returns the new count.
	IncrementReprompt(ctx context.Context, userID string) (int, error)
}

// UnitDirectory resolves an apartment identifier to its unit data. Lookups hit the
// backing table fresh every time; there is no cache to invalidate.
type UnitDirectory interface {
	// FindUnit returns ErrUnitNotFound when no active row matches, or an error
	// wrapping ErrLookupUnavailable when the source cannot be reached.
	FindUnit(ctx context.Context, apartmentID string) (*UnitRecord, error)
}

// Responder answers free-text guest questions. Each call is stateless; no conversation
// history is carried.
type Responder interface {
	Answer(ctx context.Context, question string) (string, error)
}

// MessageSender delivers a text reply to a guest. Best-effort: callers log failures
// and move on, there are no retries.
type MessageSender interface {
	SendText(ctx context.Context, phone string, message string) error
}

// Scheduler runs a function once after a delay. Scheduled work is not cancellable.
type Scheduler interface {
	ScheduleAfter(delay time.Duration, fn func())
}
