package storage

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seatwave/auth-front/internal/idp"
)

func TestPopStateOnce(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	payload := map[string]string{"token": "abc123"}
	require.NoError(t, store.PutState(ctx, "state-1", payload, StateTTL))

	got, err := store.PopState(ctx, "state-1")
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	// Second pop must fail even before expiry
	_, err = store.PopState(ctx, "state-1")
	assert.ErrorIs(t, err, ErrStateNotFound)
}

func TestPopStateUnknownToken(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.PopState(context.Background(), "never-issued")
	assert.ErrorIs(t, err, ErrStateNotFound)
}

func TestPopStateExpired(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	now := time.Now()
	store.now = func() time.Time { return now }
	require.NoError(t, store.PutState(ctx, "state-1", map[string]string{}, StateTTL))

	store.now = func() time.Time { return now.Add(StateTTL + time.Second) }
	_, err := store.PopState(ctx, "state-1")
	assert.ErrorIs(t, err, ErrStateNotFound)
}

func TestPopStateConcurrent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.PutState(ctx, "state-1", map[string]string{"token": "x"}, StateTTL))

	const workers = 50
	var wg sync.WaitGroup
	wins := make(chan struct{}, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.PopState(ctx, "state-1"); err == nil {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	assert.Len(t, wins, 1, "exactly one pop must succeed")
}

func TestSessionReadableManyTimes(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	profile := idp.Profile{FirstName: "A", LastName: "B", Email: "a@b.com", LinkedInID: "123"}
	require.NoError(t, store.PutSession(ctx, "sess-1", profile, SessionTTL))

	for i := 0; i < 3; i++ {
		got, err := store.GetSession(ctx, "sess-1")
		require.NoError(t, err)
		assert.Equal(t, profile, got)
	}
}

func TestSessionExpires(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	now := time.Now()
	store.now = func() time.Time { return now }
	require.NoError(t, store.PutSession(ctx, "sess-1", idp.Profile{LinkedInID: "123"}, SessionTTL))

	store.now = func() time.Time { return now.Add(SessionTTL + time.Second) }
	_, err := store.GetSession(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGetSessionUnknownToken(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.GetSession(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionTokenNotPoppableAsState(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.PutSession(ctx, "sess-1", idp.Profile{LinkedInID: "123"}, SessionTTL))

	// A session token lives in its own namespace and must not be
	// consumable through the state path.
	_, err := store.PopState(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrStateNotFound)

	_, err = store.GetSession(ctx, "sess-1")
	assert.NoError(t, err)
}

func TestSweep(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	now := time.Now()
	store.now = func() time.Time { return now }
	require.NoError(t, store.PutState(ctx, "fresh", map[string]string{}, StateTTL))
	require.NoError(t, store.PutState(ctx, "stale", map[string]string{}, time.Second))
	require.NoError(t, store.PutSession(ctx, "old-sess", idp.Profile{}, time.Second))

	count, err := store.Sweep(ctx, now.Add(2*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	_, err = store.PopState(ctx, "fresh")
	assert.NoError(t, err)
}
