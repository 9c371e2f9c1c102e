// Package memory provides an in-memory session store for development and tests.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	domainauth "github.com/nmoreno/portfolio-ui/internal/domain/auth"
	"github.com/nmoreno/portfolio-ui/internal/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore keeps sessions in a process-local map. It mirrors the Redis
// store's semantics (expired sessions are dropped on read, stored state is
// a snapshot) so dev mode and production behave the same.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session
	now      func() time.Time
}

// NewSessionStore creates an empty in-memory session store.
func NewSessionStore() *SessionStore {
	return NewSessionStoreWithClock(time.Now)
}

// NewSessionStoreWithClock creates a store that validates expiry against
// the given clock. For deterministic tests.
func NewSessionStoreWithClock(now func() time.Time) *SessionStore {
	if now == nil {
		now = time.Now
	}
	return &SessionStore{
		sessions: make(map[string]domainauth.Session),
		now:      now,
	}
}

// Save stores a snapshot of the session keyed by its ID. Empty IDs and
// already-expired sessions are rejected. The session is deep-copied so
// later mutations by the caller do not leak into the stored state, the
// way a Redis JSON blob would not.
func (m *SessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	if !sess.ExpiresAt.IsZero() && !sess.ExpiresAt.After(m.now()) {
		return errors.New("session is already expired")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess.Clone()
	return nil
}

// Get returns a copy of a stored session, removing and reporting
// ErrNotFound for sessions past their expiry. Each caller gets its own
// cookie map so concurrent requests for one session cannot race.
func (m *SessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ErrNotFound
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return domainauth.Session{}, ErrNotFound
	}
	if !sess.ExpiresAt.IsZero() && !sess.ExpiresAt.After(m.now()) {
		delete(m.sessions, id)
		return domainauth.Session{}, ErrNotFound
	}
	return sess.Clone(), nil
}

// Delete removes a session. Deleting a missing session is not an error.
func (m *SessionStore) Delete(_ context.Context, id string) error {
	if id == "" {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// ErrNotFound is returned when a session is not present or expired.
type notFoundError struct{}

func (notFoundError) Error() string { return "session not found" }

var ErrNotFound error = notFoundError{}
