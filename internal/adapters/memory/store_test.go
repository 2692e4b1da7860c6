package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateDefaults(t *testing.T) {
	s := NewStore()

	st, err := s.GetOrCreate(context.Background(), "573100000001")
	require.NoError(t, err)

	assert.Equal(t, "573100000001", st.UserID)
	assert.False(t, st.AwaitingApartment)
	assert.Zero(t, st.IdleRepromptCount)
}

func TestSetAwaiting(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.SetAwaiting(ctx, "u1", true))

	st, err := s.GetOrCreate(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, st.AwaitingApartment)

	require.NoError(t, s.SetAwaiting(ctx, "u1", false))

	st, err = s.GetOrCreate(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, st.AwaitingApartment)
}

func TestClearFlowResetsEverything(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.SetAwaiting(ctx, "u1", true))
	_, err := s.IncrementReprompt(ctx, "u1")
	require.NoError(t, err)

	require.NoError(t, s.ClearFlow(ctx, "u1"))

	st, err := s.GetOrCreate(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, st.AwaitingApartment)
	assert.Zero(t, st.IdleRepromptCount)
}

func TestIncrementReprompt(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	n, err := s.IncrementReprompt(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = s.IncrementReprompt(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Counters are per guest.
	n, err = s.IncrementReprompt(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestGetOrCreateReturnsSnapshot(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	st, err := s.GetOrCreate(ctx, "u1")
	require.NoError(t, err)

	// Mutating the snapshot must not leak back into the store.
	st.AwaitingApartment = true
	st.IdleRepromptCount = 99

	fresh, err := s.GetOrCreate(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, fresh.AwaitingApartment)
	assert.Zero(t, fresh.IdleRepromptCount)
}
