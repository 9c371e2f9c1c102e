package httpx

import (
	"net/http"

	apperrors "github.com/nmoreno/portfolio-ui/internal/errors"
	"github.com/nmoreno/portfolio-ui/internal/http/validation"
)

const loginFallbackError = "Credenciales inválidas"

func loginPageMeta() PageMeta {
	return PageMeta{
		Title:       "Sign in · Portfolio Admin",
		PageTitle:   "Sign in",
		CurrentPage: PageLogin,
	}
}

// LoginPage renders the admin login form.
// GET /admin/login?redirect_uri=<optional_redirect>.
func (h *UIHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	redirectURI := safeRedirectPath(r.URL.Query().Get("redirect_uri"))

	// Already signed in: skip the form entirely.
	if session := GetSessionFromContext(r.Context()); session != nil && !session.IsGuest() {
		http.Redirect(w, r, postLoginRedirect(redirectURI), http.StatusSeeOther)
		return
	}

	// The login POST needs a session to carry the upstream CSRF state,
	// so make sure the browser holds one before it submits.
	if err := h.ensureGuestSession(w, r); err != nil {
		h.logger().ErrorContext(r.Context(), "failed to create guest session", "error", err)
	}

	h.renderLoginPage(w, r, loginPageData{RedirectURI: redirectURI})
}

// LoginSubmit processes the credential form.
// POST /admin/login.
func (h *UIHandlers) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	redirectURI := safeRedirectPath(r.PostFormValue("redirect_uri"))

	if errs := validation.New().
		Validate("email", email, validation.Required("Email"), validation.Email("Email")).
		Validate("password", password, validation.Required("Password")).
		Errors(); errs != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		h.renderLoginPage(w, r, loginPageData{
			RedirectURI: redirectURI,
			Email:       email,
			Error:       errMsgFixBelow,
			FieldErrors: errs,
		})
		return
	}

	session := GetSessionFromContext(r.Context())
	if session == nil {
		guest, err := h.Auth.NewGuestSession(r.Context())
		if err != nil {
			h.logger().ErrorContext(r.Context(), "failed to create login session", "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		setSessionCookie(w, r, guest)
		session = &guest
	}

	authenticated, err := h.Auth.Login(r.Context(), session, email, password)
	if err != nil {
		h.renderLoginFailure(w, r, loginFailureParams{
			Err:         err,
			Email:       email,
			RedirectURI: redirectURI,
		})
		return
	}

	setSessionCookie(w, r, authenticated)

	target := postLoginRedirect(redirectURI)
	if IsHTMX(r) {
		HTMX(w).Redirect(target)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

type loginFailureParams struct {
	Err         error
	Email       string
	RedirectURI string
}

// renderLoginFailure maps a login error onto the form. Rejected
// credentials surface the backend's own message when it sent one.
func (h *UIHandlers) renderLoginFailure(w http.ResponseWriter, r *http.Request, p loginFailureParams) {
	var msg string
	var status int

	switch {
	case apperrors.IsUnauthorized(p.Err) || apperrors.IsValidation(p.Err):
		msg = apperrors.GetMessage(p.Err)
		if msg == "" {
			msg = loginFallbackError
		}
		status = http.StatusUnauthorized
	default:
		h.logger().ErrorContext(r.Context(), "login failed", "error", p.Err)
		msg = "Unable to sign in right now. Please try again."
		status = http.StatusBadGateway
	}

	w.WriteHeader(status)
	h.renderLoginPage(w, r, loginPageData{
		RedirectURI: p.RedirectURI,
		Email:       p.Email,
		Error:       msg,
	})
}

type loginPageData struct {
	RedirectURI string
	Email       string
	Error       string
	FieldErrors map[string]string
}

func (h *UIHandlers) renderLoginPage(w http.ResponseWriter, r *http.Request, p loginPageData) {
	builder := NewTemplateData(basePageData(r, loginPageMeta())).
		With("RedirectURI", p.RedirectURI).
		WithFormData(map[string]string{"Email": p.Email}).
		WithFieldErrors(p.FieldErrors)
	if p.Error != "" {
		builder.WithError(p.Error)
	}

	h.renderAppPage(w, r, builder.Build())
}

// ensureGuestSession makes sure the browser holds a session cookie,
// creating and persisting a guest session when it does not.
func (h *UIHandlers) ensureGuestSession(w http.ResponseWriter, r *http.Request) error {
	if session := GetSessionFromContext(r.Context()); session != nil {
		return nil
	}

	guest, err := h.Auth.NewGuestSession(r.Context())
	if err != nil {
		return err
	}
	setSessionCookie(w, r, guest)

	// Make the new session visible to the rest of this request.
	*r = *r.WithContext(SetSessionInContext(r.Context(), &guest))
	return nil
}

// postLoginRedirect picks the destination after a successful login.
// An absent or unsafe redirect lands on the dashboard.
func postLoginRedirect(sanitized string) string {
	if sanitized == "" || sanitized == "/" {
		return DashboardPath
	}
	return sanitized
}
