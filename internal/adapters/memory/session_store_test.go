package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/nmoreno/portfolio-ui/internal/domain/auth"
)

func TestSessionStore_SaveAndGet(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	session := domainauth.Session{
		ID:        "test-session-1",
		UserID:    "user-123",
		Email:     "user@example.com",
		Role:      domainauth.RoleAdmin,
		CSRFToken: "csrf-abc",
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}
	session.SetUpstreamCookie("connect.sid", "s%3Aabc")

	err := store.Save(ctx, session)
	require.NoError(t, err)

	retrieved, err := store.Get(ctx, "test-session-1")
	require.NoError(t, err)
	assert.Equal(t, session.ID, retrieved.ID)
	assert.Equal(t, session.UserID, retrieved.UserID)
	assert.Equal(t, session.Email, retrieved.Email)
	assert.Equal(t, session.Role, retrieved.Role)
	assert.Equal(t, session.CSRFToken, retrieved.CSRFToken)
	assert.Equal(t, "s%3Aabc", retrieved.UpstreamCookies["connect.sid"])
	assert.WithinDuration(t, session.ExpiresAt, retrieved.ExpiresAt, time.Second)
}

func TestSessionStore_GetNonExistent(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "non-existent")
	assert.Equal(t, ErrNotFound, err)
}

func TestSessionStore_GetEmptyID(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "")
	assert.Equal(t, ErrNotFound, err)
}

func TestSessionStore_SaveEmptyID(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	session := domainauth.Session{
		UserID:    "user-123",
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}

	err := store.Save(ctx, session)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session ID cannot be empty")
}

func TestSessionStore_SaveExpired(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	session := domainauth.Session{
		ID:        "expired",
		ExpiresAt: time.Now().Add(-time.Minute),
	}

	err := store.Save(ctx, session)
	require.Error(t, err)
}

func TestSessionStore_GetExpired(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	// Bypass Save's expiry guard to simulate a session expiring after storage.
	store.sessions["stale"] = domainauth.Session{
		ID:        "stale",
		ExpiresAt: time.Now().Add(-time.Minute),
	}

	_, err := store.Get(ctx, "stale")
	assert.Equal(t, ErrNotFound, err)
}

func TestSessionStore_Delete(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	session := domainauth.Session{
		ID:        "test-session-1",
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}

	require.NoError(t, store.Save(ctx, session))
	require.NoError(t, store.Delete(ctx, "test-session-1"))

	_, err := store.Get(ctx, "test-session-1")
	assert.Equal(t, ErrNotFound, err)
}

func TestSessionStore_DeleteEmptyID(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	assert.NoError(t, store.Delete(ctx, ""))
}

func TestSessionStore_GetReturnsIndependentCopies(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	session := domainauth.Session{
		ID:        "shared",
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}
	session.SetUpstreamCookie("connect.sid", "original")
	require.NoError(t, store.Save(ctx, session))

	first, err := store.Get(ctx, "shared")
	require.NoError(t, err)
	second, err := store.Get(ctx, "shared")
	require.NoError(t, err)

	// Mutating one caller's session must not leak into another's,
	// nor into the stored state.
	first.SetUpstreamCookie("connect.sid", "rotated")
	assert.Equal(t, "original", second.UpstreamCookies["connect.sid"])

	stored, err := store.Get(ctx, "shared")
	require.NoError(t, err)
	assert.Equal(t, "original", stored.UpstreamCookies["connect.sid"])
}

func TestSessionStore_SaveSnapshotsCookies(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	session := domainauth.Session{
		ID:        "snap",
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}
	session.SetUpstreamCookie("connect.sid", "at-save")
	require.NoError(t, store.Save(ctx, session))

	session.SetUpstreamCookie("connect.sid", "after-save")

	stored, err := store.Get(ctx, "snap")
	require.NoError(t, err)
	assert.Equal(t, "at-save", stored.UpstreamCookies["connect.sid"])
}

func TestSessionStore_ConcurrentGetAndMutate(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	session := domainauth.Session{
		ID:        "busy",
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}
	session.SetUpstreamCookie("connect.sid", "v0")
	require.NoError(t, store.Save(ctx, session))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			got, err := store.Get(ctx, "busy")
			if err != nil {
				t.Error(err)
				return
			}
			got.SetUpstreamCookie("connect.sid", fmt.Sprintf("v%d", n))
		}(i)
	}
	wg.Wait()
}

func TestSessionStore_ClockInjection(t *testing.T) {
	current := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	store := NewSessionStoreWithClock(func() time.Time { return current })
	ctx := context.Background()

	session := domainauth.Session{
		ID:        "clocked",
		ExpiresAt: current.Add(time.Hour),
	}
	require.NoError(t, store.Save(ctx, session))

	_, err := store.Get(ctx, "clocked")
	require.NoError(t, err)

	current = current.Add(2 * time.Hour)
	_, err = store.Get(ctx, "clocked")
	assert.Equal(t, ErrNotFound, err)
}
