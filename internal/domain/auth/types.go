package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import "time"

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleGuest Role = "guest"
)

// Identity represents the authenticated principal returned by the
// backend API's /auth/me endpoint.
type Identity struct {
	UserID string
	Name   string
	Email  string
	Role   Role
}

// Session is the server-side record we persist for a browser session.
// ID is an opaque session identifier (e.g., random URL-safe string).
//
// Each session carries its own upstream state: the cookies the backend
// API set for it (auth cookie, XSRF cookie) and whether the CSRF token
// has been primed. A fresh session always starts unprimed; destroying
// the session discards the upstream cookies with it, so the priming
// flag can never leak across session boundaries.
type Session struct {
	ID              string            `json:"id"`
	UserID          string            `json:"user_id"`
	Name            string            `json:"name"`
	Email           string            `json:"email"`
	Role            Role              `json:"role"`
	UpstreamCookies map[string]string `json:"upstream_cookies,omitempty"`
	CSRFToken       string            `json:"csrf_token,omitempty"`
	CSRFPrimed      bool              `json:"csrf_primed"`
	ExpiresAt       time.Time         `json:"expires_at"`

	// dirty tracks in-memory upstream cookie changes that the session
	// store has not seen yet. It never serializes.
	dirty bool
}

// IsGuest returns true if the session has no authenticated identity.
func (s Session) IsGuest() bool { return s.Role == RoleGuest || s.UserID == "" }

// Clone returns a deep copy of the session. Useful when requests run
// concurrently on behalf of one session.
func (s Session) Clone() Session {
	out := s
	if s.UpstreamCookies != nil {
		out.UpstreamCookies = make(map[string]string, len(s.UpstreamCookies))
		for k, v := range s.UpstreamCookies {
			out.UpstreamCookies[k] = v
		}
	}
	return out
}

// SetUpstreamCookie records a cookie the backend API set for this session.
// An empty value deletes the cookie. Actual changes mark the session
// dirty so the caller knows to persist it.
func (s *Session) SetUpstreamCookie(name, value string) {
	if value == "" {
		if _, ok := s.UpstreamCookies[name]; ok {
			delete(s.UpstreamCookies, name)
			s.dirty = true
		}
		return
	}
	if s.UpstreamCookies == nil {
		s.UpstreamCookies = make(map[string]string)
	}
	if s.UpstreamCookies[name] != value {
		s.UpstreamCookies[name] = value
		s.dirty = true
	}
}

// Dirty reports whether upstream cookie state changed since the session
// was last persisted.
func (s *Session) Dirty() bool { return s.dirty }

// ClearDirty marks the current upstream cookie state as persisted.
func (s *Session) ClearDirty() { s.dirty = false }
