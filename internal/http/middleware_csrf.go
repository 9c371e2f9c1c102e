package httpx

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"net/http"
)

// CSRF protection for the app's own forms using the double-submit cookie
// pattern. This token guards requests from the browser to this server and is
// unrelated to the token the upstream backend hands out for its own mutations.
//
// How it works:
// 1. Server generates a random token and sets it as a cookie
// 2. Client must include the same token in the X-Csrf-Token header or a
//    csrf_token form field on state-changing requests
// 3. Server validates that the submitted token matches the cookie
//
// This works because:
// - Same-origin policy prevents attackers from reading the cookie
// - Attackers can't set custom headers in cross-origin form submissions

const (
	csrfCookieName  = "csrf_token"
	csrfHeaderName  = "X-Csrf-Token"
	csrfFormField   = "csrf_token"
	csrfTokenLength = 32 // 32 bytes = 256 bits of entropy
)

// CSRFConfig holds configuration for CSRF protection.
type CSRFConfig struct {
	// Secure sets the Secure flag on the CSRF cookie (HTTPS only)
	Secure bool
	// CookieMaxAge is the max age for the CSRF cookie in seconds
	CookieMaxAge int
}

// CSRFProtection returns a middleware that implements double-submit cookie CSRF protection.
//
// For safe methods (GET, HEAD, OPTIONS), it ensures a CSRF token cookie exists.
// For state-changing methods (POST, PUT, DELETE, PATCH), it validates the token.
func CSRFProtection(cfg CSRFConfig) func(http.Handler) http.Handler {
	if cfg.CookieMaxAge == 0 {
		cfg.CookieMaxAge = 43200 // 12 hours default
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				// Safe methods: ensure token exists for future state-changing requests
				token := ensureCSRFCookie(w, r, cfg)
				// Add token to request context so handlers can include it in forms
				ctx := setCSRFTokenInContext(r.Context(), token)
				next.ServeHTTP(w, r.WithContext(ctx))

			case http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch:
				// State-changing methods: validate token
				if err := validateCSRFToken(r); err != nil {
					WriteError(w, ErrorParams{
						Code:    http.StatusForbidden,
						ErrCode: "csrf_validation_failed",
						Err:     errors.New("CSRF token validation failed"),
					})
					return
				}
				// Token is valid, rotate it for the next request
				token := generateCSRFToken()
				setCSRFCookie(w, r, token, cfg)
				ctx := setCSRFTokenInContext(r.Context(), token)
				next.ServeHTTP(w, r.WithContext(ctx))

			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// ensureCSRFCookie ensures a CSRF token cookie exists, creating one if needed.
// Returns the token value.
func ensureCSRFCookie(w http.ResponseWriter, r *http.Request, cfg CSRFConfig) string {
	cookie, err := r.Cookie(csrfCookieName)
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}

	token := generateCSRFToken()
	setCSRFCookie(w, r, token, cfg)
	return token
}

// generateCSRFToken creates a cryptographically secure random token.
func generateCSRFToken() string {
	bytes := make([]byte, csrfTokenLength)
	if _, err := rand.Read(bytes); err != nil {
		// rand.Read should never fail on supported platforms
		panic("failed to generate CSRF token: " + err.Error())
	}
	return base64.URLEncoding.EncodeToString(bytes)
}

// setCSRFCookie sets the CSRF token cookie with appropriate security flags.
func setCSRFCookie(w http.ResponseWriter, r *http.Request, token string, cfg CSRFConfig) {
	secure := cfg.Secure || r.TLS != nil || isForwardedHTTPS(r)

	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   cfg.CookieMaxAge,
		HttpOnly: false, // Must be readable by JavaScript for HTMX to include in headers
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// isForwardedHTTPS checks if the request came through an HTTPS-terminating proxy.
func isForwardedHTTPS(r *http.Request) bool {
	return r.Header.Get("X-Forwarded-Proto") == "https"
}

// validateCSRFToken validates the CSRF token using constant-time comparison.
// Checks the X-Csrf-Token header first, then falls back to the form field.
func validateCSRFToken(r *http.Request) error {
	cookie, err := r.Cookie(csrfCookieName)
	if err != nil || cookie.Value == "" {
		return errors.New("missing CSRF cookie")
	}

	submitted := r.Header.Get(csrfHeaderName)
	if submitted == "" {
		submitted = r.PostFormValue(csrfFormField)
	}
	if submitted == "" {
		return errors.New("missing CSRF token in request")
	}

	if subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(submitted)) != 1 {
		return errors.New("CSRF token mismatch")
	}

	return nil
}

// csrfTokenKey is the context key for the CSRF token.
type csrfTokenKey struct{}

// setCSRFTokenInContext adds the CSRF token to the request context.
func setCSRFTokenInContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, csrfTokenKey{}, token)
}

// GetCSRFToken retrieves the CSRF token from the request context.
// Returns an empty string if no token is set.
func GetCSRFToken(ctx context.Context) string {
	if token, ok := ctx.Value(csrfTokenKey{}).(string); ok {
		return token
	}
	return ""
}
