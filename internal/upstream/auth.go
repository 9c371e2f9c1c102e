package upstream

import (
	"context"
	"net/http"

	domainauth "github.com/nmoreno/portfolio-ui/internal/domain/auth"
)

// csrfResponse is the body of GET /auth/csrf. The token also arrives as
// the XSRF-TOKEN cookie; the body copy is a fallback for backends that
// only return it there.
type csrfResponse struct {
	CSRFToken string `json:"csrfToken"`
}

// meResponse is the body of GET /auth/me.
type meResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// FetchCSRF primes the session's CSRF token via GET /auth/csrf.
func (c *Client) FetchCSRF(ctx context.Context, sess *domainauth.Session) error {
	var body csrfResponse
	if err := c.do(ctx, sess, http.MethodGet, "/auth/csrf", nil, &body); err != nil {
		return err
	}
	if sess.CSRFToken == "" && body.CSRFToken != "" {
		sess.CSRFToken = body.CSRFToken
		sess.SetUpstreamCookie(csrfCookieName, body.CSRFToken)
	}
	sess.CSRFPrimed = sess.CSRFToken != ""
	return nil
}

// Login exchanges credentials for an authenticated backend cookie.
// The backend sets its auth cookie on success; it lands in the
// session's cookie jar via the shared capture path.
func (c *Client) Login(ctx context.Context, sess *domainauth.Session, email, password string) error {
	req := loginRequest{Email: email, Password: password}
	return c.do(ctx, sess, http.MethodPost, "/auth/login", req, nil)
}

// Me returns the identity behind the session's backend cookie.
func (c *Client) Me(ctx context.Context, sess *domainauth.Session) (domainauth.Identity, error) {
	var body meResponse
	if err := c.do(ctx, sess, http.MethodGet, "/auth/me", nil, &body); err != nil {
		return domainauth.Identity{}, err
	}

	role := domainauth.Role(body.Role)
	if role == "" {
		role = domainauth.RoleAdmin
	}
	return domainauth.Identity{
		UserID: body.ID,
		Name:   body.Name,
		Email:  body.Email,
		Role:   role,
	}, nil
}

// Logout invalidates the backend cookie.
func (c *Client) Logout(ctx context.Context, sess *domainauth.Session) error {
	return c.do(ctx, sess, http.MethodPost, "/auth/logout", nil, nil)
}
