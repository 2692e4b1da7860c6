// Package redis provides a Redis-backed conversation state store for deployments that
// want state to survive restarts or be shared across replicas.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/altosdelrio/guest-concierge/internal/core"
)

const (
	// stateKeyPrefix is the prefix for conversation state keys in Redis
	stateKeyPrefix = "conversation:"
	// stateTTL bounds how long an abandoned flow lingers
	stateTTL = 24 * time.Hour
)

// Store implements core.StateStore on a Redis client.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis-backed store.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// GetOrCreate returns the stored state for userID, or a fresh default when none
// exists. The default is not persisted until the first mutation.
func (s *Store) GetOrCreate(ctx context.Context, userID string) (*core.ConversationState, error) {
	val, err := s.client.Get(ctx, stateKeyPrefix+userID).Result()
	if err == redis.Nil {
		return &core.ConversationState{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation state: %w", err)
	}

	var state core.ConversationState
	if err := json.Unmarshal([]byte(val), &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal conversation state: %w", err)
	}
	return &state, nil
}

// SetAwaiting flags whether the guest owes us an apartment number.
func (s *Store) SetAwaiting(ctx context.Context, userID string, awaiting bool) error {
	state, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	state.AwaitingApartment = awaiting
	return s.save(ctx, state)
}

// ClearFlow resets the lookup flow and the idle-nudge counter.
func (s *Store) ClearFlow(ctx context.Context, userID string) error {
	state, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	state.AwaitingApartment = false
	state.IdleRepromptCount = 0
	return s.save(ctx, state)
}

// IncrementReprompt bumps the idle-nudge counter and returns the new count.
func (s *Store) IncrementReprompt(ctx context.Context, userID string) (int, error) {
	state, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return 0, err
	}
	state.IdleRepromptCount++
	if err := s.save(ctx, state); err != nil {
		return 0, err
	}
	return state.IdleRepromptCount, nil
}

func (s *Store) save(ctx context.Context, state *core.ConversationState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal conversation state: %w", err)
	}
	if err := s.client.Set(ctx, stateKeyPrefix+state.UserID, data, stateTTL).Err(); err != nil {
		return fmt.Errorf("failed to set conversation state: %w", err)
	}
	return nil
}
