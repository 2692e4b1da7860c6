// Package memory provides the default in-process conversation state store.
package memory

import (
	"context"
	"sync"

	"github.com/altosdelrio/guest-concierge/internal/core"
)

// Store keeps conversation state in a mutex-guarded map. State lives only for the
// process lifetime; a restart forgets every in-flight flow. The mutex protects map
// integrity only — read-modify-write cycles across two rapid messages from the same
// guest may still interleave, which matches the service's accepted ordering model.
type Store struct {
	mu     sync.Mutex
	states map[string]*core.ConversationState
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{states: make(map[string]*core.ConversationState)}
}

// locked returns the live entry for userID, creating it if needed. Callers must hold
// the mutex.
func (s *Store) locked(userID string) *core.ConversationState {
	st, ok := s.states[userID]
	if !ok {
		st = &core.ConversationState{UserID: userID}
		s.states[userID] = st
	}
	return st
}

// GetOrCreate returns a snapshot of the guest's state. A copy is handed out so
// callers cannot mutate the store without going through its operations.
func (s *Store) GetOrCreate(_ context.Context, userID string) (*core.ConversationState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := *s.locked(userID)
	return &snapshot, nil
}

// SetAwaiting flags whether the guest owes us an apartment number.
func (s *Store) SetAwaiting(_ context.Context, userID string, awaiting bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.locked(userID).AwaitingApartment = awaiting
	return nil
}

// ClearFlow resets the lookup flow and the idle-nudge counter.
func (s *Store) ClearFlow(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.locked(userID)
	st.AwaitingApartment = false
	st.IdleRepromptCount = 0
	return nil
}

// IncrementReprompt bumps the idle-nudge counter and returns the new count.
func (s *Store) IncrementReprompt(_ context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.locked(userID)
	st.IdleRepromptCount++
	return st.IdleRepromptCount, nil
}
