package httpx

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func csrfCookieFromResponse(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	res := w.Result()
	t.Cleanup(func() { _ = res.Body.Close() })
	for _, c := range res.Cookies() {
		if c.Name == csrfCookieName {
			return c
		}
	}
	return nil
}

func TestCSRFProtection_GetSetsCookieAndContext(t *testing.T) {
	var ctxToken string
	handler := CSRFProtection(CSRFConfig{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxToken = GetCSRFToken(r.Context())
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	cookie := csrfCookieFromResponse(t, w)
	require.NotNil(t, cookie, "expected csrf cookie to be set")
	assert.NotEmpty(t, cookie.Value)
	assert.Equal(t, cookie.Value, ctxToken)
	assert.False(t, cookie.HttpOnly, "cookie must be readable by client JS")
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.Equal(t, 43200, cookie.MaxAge)
}

func TestCSRFProtection_GetReusesExistingCookie(t *testing.T) {
	var ctxToken string
	handler := CSRFProtection(CSRFConfig{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxToken = GetCSRFToken(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: csrfCookieName, Value: "existing-token"})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, "existing-token", ctxToken)
	assert.Nil(t, csrfCookieFromResponse(t, w), "no new cookie expected")
}

func TestCSRFProtection_PostWithoutTokenRejected(t *testing.T) {
	next, called := okHandler()
	handler := CSRFProtection(CSRFConfig{})(next)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/contact", nil))

	assert.False(t, *called)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "csrf_validation_failed")
}

func TestCSRFProtection_PostWithMismatchedTokenRejected(t *testing.T) {
	next, called := okHandler()
	handler := CSRFProtection(CSRFConfig{})(next)

	r := httptest.NewRequest(http.MethodPost, "/contact", nil)
	r.AddCookie(&http.Cookie{Name: csrfCookieName, Value: "cookie-token"})
	r.Header.Set(csrfHeaderName, "different-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.False(t, *called)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCSRFProtection_PostWithHeaderTokenRotates(t *testing.T) {
	next, called := okHandler()
	handler := CSRFProtection(CSRFConfig{})(next)

	r := httptest.NewRequest(http.MethodPost, "/contact", nil)
	r.AddCookie(&http.Cookie{Name: csrfCookieName, Value: "cookie-token"})
	r.Header.Set(csrfHeaderName, "cookie-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.True(t, *called)
	rotated := csrfCookieFromResponse(t, w)
	require.NotNil(t, rotated, "expected rotated csrf cookie")
	assert.NotEqual(t, "cookie-token", rotated.Value)
}

func TestCSRFProtection_PostWithFormFieldToken(t *testing.T) {
	next, called := okHandler()
	handler := CSRFProtection(CSRFConfig{})(next)

	form := url.Values{csrfFormField: {"cookie-token"}}
	r := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.AddCookie(&http.Cookie{Name: csrfCookieName, Value: "cookie-token"})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.True(t, *called)
}

func TestCSRFProtection_SecureFlagFromForwardedProto(t *testing.T) {
	handler := CSRFProtection(CSRFConfig{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Forwarded-Proto", "https")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	cookie := csrfCookieFromResponse(t, w)
	require.NotNil(t, cookie)
	assert.True(t, cookie.Secure)
}
