package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	domainauth "github.com/nmoreno/portfolio-ui/internal/domain/auth"
	"github.com/nmoreno/portfolio-ui/internal/ports"
	"github.com/google/uuid"
)

// DefaultSessionTTL bounds how long a browser session lives. The
// backend cookie usually expires sooner; an expired backend cookie
// surfaces as an unauthorized error and destroys the session anyway.
const DefaultSessionTTL = 8 * time.Hour

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Backend    ports.AuthAPI
	Sessions   ports.SessionStore
	SessionTTL time.Duration
	Logger     *slog.Logger
	Now        func() time.Time // Optional: for deterministic tests
}

// AuthService orchestrates login against the backend API and owns the
// local session lifecycle.
type AuthService struct {
	backend  ports.AuthAPI
	sessions ports.SessionStore
	ttl      time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

var errSessionExpired = errors.New("session expired")

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "auth_service")
	}
	return &AuthService{
		backend:  opts.Backend,
		sessions: opts.Sessions,
		ttl:      ttl,
		logger:   logger,
		now:      now,
	}
}

// NewGuestSession creates and persists an anonymous session. Guest
// sessions carry the CSRF state needed for the public contact form and
// the login form itself.
func (s *AuthService) NewGuestSession(ctx context.Context) (domainauth.Session, error) {
	sess := domainauth.Session{
		ID:        generateSessionID(),
		Role:      domainauth.RoleGuest,
		ExpiresAt: s.now().Add(s.ttl),
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return domainauth.Session{}, fmt.Errorf("save guest session: %w", err)
	}
	return sess, nil
}

// EnsureCSRF primes the session's CSRF token exactly once. Subsequent
// calls are no-ops until the session is destroyed or the backend
// expires the token, so callers can invoke it before every mutation.
func (s *AuthService) EnsureCSRF(ctx context.Context, sess *domainauth.Session) error {
	if sess.CSRFPrimed {
		return nil
	}
	if err := s.backend.FetchCSRF(ctx, sess); err != nil {
		return err
	}
	if err := s.sessions.Save(ctx, *sess); err != nil {
		return fmt.Errorf("save session after csrf fetch: %w", err)
	}
	sess.ClearDirty()
	return nil
}

// Login authenticates against the backend and returns a fresh
// authenticated session. The flow mirrors the backend's contract:
// prime CSRF, POST credentials, then fetch the identity.
//
// The session ID is rotated on success; the anonymous session the
// browser held during login is destroyed along with its CSRF state.
func (s *AuthService) Login(
	ctx context.Context,
	sess *domainauth.Session,
	email, password string,
) (domainauth.Session, error) {
	if err := s.EnsureCSRF(ctx, sess); err != nil {
		return domainauth.Session{}, err
	}

	if err := s.backend.Login(ctx, sess, email, password); err != nil {
		return domainauth.Session{}, err
	}

	identity, err := s.backend.Me(ctx, sess)
	if err != nil {
		return domainauth.Session{}, err
	}

	authenticated := domainauth.Session{
		ID:              generateSessionID(),
		UserID:          identity.UserID,
		Name:            identity.Name,
		Email:           identity.Email,
		Role:            identity.Role,
		UpstreamCookies: sess.UpstreamCookies,
		CSRFToken:       sess.CSRFToken,
		CSRFPrimed:      sess.CSRFPrimed,
		ExpiresAt:       s.now().Add(s.ttl),
	}

	if saveErr := s.sessions.Save(ctx, authenticated); saveErr != nil {
		return domainauth.Session{}, fmt.Errorf("save session: %w", saveErr)
	}

	if deleteErr := s.sessions.Delete(ctx, sess.ID); deleteErr != nil && s.logger != nil {
		s.logger.Warn("failed to delete pre-login session", slog.Any("error", deleteErr))
	}

	return authenticated, nil
}

// GetSession retrieves a session by ID, cleaning it up when expired.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if s.now().After(session.ExpiresAt) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(errSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, errSessionExpired
	}

	return &session, nil
}

// SaveSession persists a session whose upstream cookie state changed.
func (s *AuthService) SaveSession(ctx context.Context, sess domainauth.Session) error {
	if err := s.sessions.Save(ctx, sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// PersistUpstreamState saves the session when the backend rotated its
// cookies during a request. A no-op for clean sessions, so services can
// call it after every backend round-trip. Failures are logged rather
// than surfaced: the upstream operation already succeeded and the dirty
// flag keeps the state eligible for the next persist attempt.
func (s *AuthService) PersistUpstreamState(ctx context.Context, sess *domainauth.Session) {
	if sess == nil || !sess.Dirty() {
		return
	}
	if err := s.SaveSession(ctx, *sess); err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "failed to persist rotated upstream cookies",
				slog.String("session_id", sess.ID),
				slog.Any("error", err),
			)
		}
		return
	}
	sess.ClearDirty()
}

// Logout invalidates the backend cookie and destroys the local
// session. The backend call is best-effort: a failure there never
// blocks the local logout.
func (s *AuthService) Logout(ctx context.Context, sess *domainauth.Session) error {
	if sess == nil {
		return nil
	}

	if err := s.backend.Logout(ctx, sess); err != nil && s.logger != nil {
		s.logger.Warn("backend logout failed",
			slog.String("session_id", sess.ID),
			slog.Any("error", err),
		)
	}

	if err := s.sessions.Delete(ctx, sess.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DestroySession removes a session without calling the backend. Used
// when the backend already rejected the session's credentials.
func (s *AuthService) DestroySession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// generateSessionID creates a cryptographically secure random session ID.
func generateSessionID() string {
	// Use UUID for session ID - it's URL-safe and has good entropy
	id := uuid.New()
	return id.String()
}
