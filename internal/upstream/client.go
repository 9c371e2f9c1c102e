// Package upstream implements the HTTP client for the backend portfolio API.
//
// The backend owns all persistence; this package is the only place that
// talks to it. Every request runs on behalf of a browser session: the
// client replays the session's upstream cookies, echoes the CSRF token
// on mutating methods, and records any Set-Cookie headers back onto the
// session so the caller can persist them.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"
	domainauth "github.com/nmoreno/portfolio-ui/internal/domain/auth"
	apperrors "github.com/nmoreno/portfolio-ui/internal/errors"
)

const (
	csrfCookieName = "XSRF-TOKEN"
	csrfHeaderName = "X-XSRF-TOKEN"

	defaultTimeout = 10 * time.Second

	// maxErrorBodyBytes bounds how much of an error response we parse.
	maxErrorBodyBytes = 64 * 1024
)

// errorMessageExprs are tried in order against an error response body.
// The backend wraps errors in a few shapes depending on which layer
// produced them; validation errors carry an array of messages.
var errorMessageExprs = []string{
	"message",
	"error.message",
	"errors[0].message",
}

// JMESPathEvaluator abstracts JMESPath operations for testability.
type JMESPathEvaluator interface {
	Evaluate(expr string, data any) (any, error)
}

// jmespathLibEvaluator implements JMESPathEvaluator using go-jmespath.
type jmespathLibEvaluator struct{}

func (j jmespathLibEvaluator) Evaluate(expr string, data any) (any, error) {
	return jmespath.Search(expr, data)
}

// ClientOptions groups dependencies for Client.
type ClientOptions struct {
	BaseURL    string       // Required: backend API base URL, e.g. "https://api.example.com"
	HTTPClient *http.Client // Optional: defaults to a client with a 10s timeout
	Logger     *slog.Logger // Optional: structured logger
	Evaluator  JMESPathEvaluator
}

// Client is the backend API client. It is safe for concurrent use; all
// per-user state lives on the session passed to each call.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
	jems    JMESPathEvaluator
}

// NewClient constructs a backend API client.
func NewClient(opts ClientOptions) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid backend base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid backend URL scheme: %s", u.Scheme)
	}
	if strings.TrimSpace(u.Host) == "" {
		return nil, errors.New("invalid backend URL: missing host")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	jems := opts.Evaluator
	if jems == nil {
		jems = jmespathLibEvaluator{}
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "upstream_client")
	}

	return &Client{
		baseURL: base,
		http:    httpClient,
		logger:  logger,
		jems:    jems,
	}, nil
}

// do executes a request on behalf of sess and decodes the JSON response
// into out when out is non-nil. Cookies the backend sets are recorded
// on the session; the caller persists the session if it cares.
func (c *Client) do(ctx context.Context, sess *domainauth.Session, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode request body")
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.attachSessionState(req, sess, method)

	resp, err := c.http.Do(req)
	if err != nil {
		return classifyTransportError(ctx, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodyBytes))
		_ = resp.Body.Close()
	}()

	c.captureCookies(resp, sess)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.classifyResponseError(method, path, resp)
	}

	if out == nil {
		return nil
	}
	if decodeErr := json.NewDecoder(resp.Body).Decode(out); decodeErr != nil {
		return apperrors.Wrapf(decodeErr, apperrors.ErrCodeUpstream, "decode %s %s response", method, path)
	}
	return nil
}

// attachSessionState replays the session's upstream cookies and echoes
// the CSRF token header on mutating methods (double-submit pattern).
func (c *Client) attachSessionState(req *http.Request, sess *domainauth.Session, method string) {
	if sess == nil {
		return
	}
	for name, value := range sess.UpstreamCookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		if sess.CSRFToken != "" {
			req.Header.Set(csrfHeaderName, sess.CSRFToken)
		}
	}
}

// captureCookies records backend Set-Cookie headers onto the session.
// The XSRF cookie doubles as the header token for later requests.
func (c *Client) captureCookies(resp *http.Response, sess *domainauth.Session) {
	if sess == nil {
		return
	}
	for _, ck := range resp.Cookies() {
		expired := ck.MaxAge < 0 || (!ck.Expires.IsZero() && ck.Expires.Before(time.Now()))
		if expired {
			sess.SetUpstreamCookie(ck.Name, "")
			if ck.Name == csrfCookieName {
				sess.CSRFToken = ""
				sess.CSRFPrimed = false
			}
			continue
		}
		sess.SetUpstreamCookie(ck.Name, ck.Value)
		if ck.Name == csrfCookieName {
			sess.CSRFToken = ck.Value
		}
	}
}

// classifyResponseError maps a non-2xx backend response to an AppError,
// preferring the backend's own message when one can be extracted.
func (c *Client) classifyResponseError(method, path string, resp *http.Response) error {
	msg := c.extractErrorMessage(resp)

	code := apperrors.ErrCodeUpstream
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		code = apperrors.ErrCodeUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		code = apperrors.ErrCodeNotFound
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		code = apperrors.ErrCodeValidation
	}

	if c.logger != nil {
		c.logger.Warn("backend request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.String("code", string(code)),
		)
	}

	if msg == "" {
		msg = fmt.Sprintf("backend returned status %d", resp.StatusCode)
	}
	return &apperrors.AppError{Code: code, Message: msg}
}

// extractErrorMessage probes the error body with the known JMESPath
// shapes and returns the first string it finds. A message array (as
// produced by backend validation) collapses to its first entry.
func (c *Client) extractErrorMessage(resp *http.Response) string {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var data any
	if json.Unmarshal(raw, &data) != nil {
		return ""
	}

	for _, expr := range errorMessageExprs {
		res, evalErr := c.jems.Evaluate(expr, data)
		if evalErr != nil || res == nil {
			continue
		}
		switch v := res.(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				return v
			}
		case []any:
			for _, item := range v {
				if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
					return s
				}
			}
		}
	}
	return ""
}

// classifyTransportError maps transport-level failures onto the error
// taxonomy so callers can distinguish timeouts from backend outages.
func classifyTransportError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled):
		return apperrors.Wrap(err, apperrors.ErrCodeCanceled, "backend request canceled")
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return apperrors.Wrap(err, apperrors.ErrCodeTimeout, "backend request timed out")
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apperrors.Wrap(err, apperrors.ErrCodeTimeout, "backend request timed out")
	}
	return apperrors.Wrap(err, apperrors.ErrCodeUpstream, "backend unreachable")
}
