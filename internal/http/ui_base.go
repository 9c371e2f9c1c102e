package httpx

import (
	"context"
	"html"
	"log/slog"
	"maps"
	"net/http"
	"strings"

	domainauth "github.com/nmoreno/portfolio-ui/internal/domain/auth"
	"github.com/nmoreno/portfolio-ui/internal/domain/model"
	apperrors "github.com/nmoreno/portfolio-ui/internal/errors"
	"github.com/nmoreno/portfolio-ui/internal/http/ui/viewmodel"
	"github.com/nmoreno/portfolio-ui/internal/service"
)

const errMsgFixBelow = "Please fix the errors below."

// ExperienceUIService is a minimal interface for the experience admin UI.
type ExperienceUIService interface {
	List(ctx context.Context, sess *domainauth.Session) ([]model.ExperienceEntry, error)
	Create(ctx context.Context, sess *domainauth.Session, req model.ExperienceRequest) (model.ExperienceEntry, error)
	Update(
		ctx context.Context,
		sess *domainauth.Session,
		id string,
		req model.ExperienceRequest,
	) (model.ExperienceEntry, error)
	Delete(ctx context.Context, sess *domainauth.Session, id string) error
}

// MessageUIService is a minimal interface for the inbox UI and the public contact form.
type MessageUIService interface {
	List(ctx context.Context, sess *domainauth.Session, filter model.MessagesFilter) ([]model.Message, error)
	Inbox(
		ctx context.Context,
		sess *domainauth.Session,
		filter model.MessagesFilter,
	) ([]model.Message, model.MessageStats, error)
	Get(ctx context.Context, sess *domainauth.Session, id string) (model.Message, error)
	MarkOpened(ctx context.Context, sess *domainauth.Session, msg model.Message) model.Message
	UpdateStatus(
		ctx context.Context,
		sess *domainauth.Session,
		id string,
		status model.MessageStatus,
	) (model.Message, error)
	Delete(ctx context.Context, sess *domainauth.Session, id string) error
	Submit(ctx context.Context, sess *domainauth.Session, req model.ContactRequest) error
}

// ProjectUIService is a minimal interface for project listings.
type ProjectUIService interface {
	ListPublic(ctx context.Context, sess *domainauth.Session) ([]model.Project, error)
	ListAdmin(ctx context.Context, sess *domainauth.Session) ([]model.Project, error)
}

// DashboardUIService is a minimal interface for the dashboard summary.
type DashboardUIService interface {
	Summary(ctx context.Context, sess *domainauth.Session) (model.DashboardSummary, error)
}

// Compile-time interface assertions to ensure concrete services satisfy their UI interfaces.
var (
	_ AuthServiceInterface = (*service.AuthService)(nil)
	_ ExperienceUIService  = (*service.ExperienceService)(nil)
	_ MessageUIService     = (*service.MessageService)(nil)
	_ ProjectUIService     = (*service.ProjectService)(nil)
	_ DashboardUIService   = (*service.DashboardService)(nil)
)

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T             *TemplateRenderer
	Auth          AuthServiceInterface
	ExperienceSvc ExperienceUIService
	MessageSvc    MessageUIService
	ProjectSvc    ProjectUIService
	DashboardSvc  DashboardUIService
	IsDev         bool // Development mode flag for enhanced error reporting
	Logger        *slog.Logger
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

// buildLayout constructs shared layout metadata from the request/session context.
func buildLayout(r *http.Request, meta PageMeta) viewmodel.Layout {
	layout := viewmodel.Layout{
		Title:       meta.Title,
		PageTitle:   meta.PageTitle,
		CurrentPage: meta.CurrentPage,
	}

	if csrfToken := GetCSRFToken(r.Context()); csrfToken != "" {
		layout.CSRFToken = csrfToken
	}

	if session := GetSessionFromContext(r.Context()); session != nil && !session.IsGuest() {
		layout.User = &viewmodel.User{
			Name:  session.Name,
			Email: session.Email,
		}
		layout.IsAuthenticated = true
	}

	return layout
}

// basePageData constructs the common page data map with user context.
func basePageData(r *http.Request, meta PageMeta) map[string]any {
	layout := buildLayout(r, meta)
	data := map[string]any{
		"Title":           layout.Title,
		"PageTitle":       layout.PageTitle,
		"CurrentPage":     layout.CurrentPage,
		"IsAuthenticated": layout.IsAuthenticated,
	}

	if layout.CSRFToken != "" {
		data["CSRFToken"] = layout.CSRFToken
	}
	if layout.User != nil {
		data["User"] = layout.User
	}

	return data
}

// PageSpec defines metadata and an optional fetch for page-specific data.
type PageSpec struct {
	Meta  PageMeta
	Fetch func(ctx context.Context, data map[string]any) error
}

// Page builds base data, optionally fetches content data, and renders.
// An unauthorized error from the fetch destroys the session and
// redirects to the login page instead of rendering.
func (h *UIHandlers) Page(w http.ResponseWriter, r *http.Request, spec PageSpec) {
	data := basePageData(r, spec.Meta)
	if err := h.invokePageFetch(r, spec.Fetch, data); err != nil {
		if apperrors.IsUnauthorized(err) {
			h.handleSessionRejected(w, r)
			return
		}
		h.logger().ErrorContext(r.Context(), "page data fetch failed",
			"error", err, "page", spec.Meta.CurrentPage)
		markPageError(data)
	}
	h.renderAppPage(w, r, data)
}

// renderAppPage renders a page with proper HTMX partial support.
func (h *UIHandlers) renderAppPage(w http.ResponseWriter, r *http.Request, data any) {
	// Handle full page requests first (early return) to reduce nesting
	if !WantsPartial(r) {
		if err := h.T.RenderFull(w, data); err != nil {
			h.logAndRenderTemplateError(w, r, err, "full page render")
		}
		return
	}

	// For HTMX requests, render the content plus out-of-band header updates
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	// Hint client JS to update nav active state based on current path
	SetHXTrigger(w, "nav:activate", map[string]string{"path": r.URL.Path})

	layout := extractLayoutInfo(data)

	// Include a <title> element so htmx updates document.title on partial swaps
	safeDocTitle := html.EscapeString(layout.Title)
	if _, err := w.Write([]byte(`<title>` + safeDocTitle + `</title>`)); err != nil {
		h.logger().Error("failed to write partial document title", "error", err)
		return
	}

	// Out-of-band update for the header title
	safeTitle := html.EscapeString(layout.PageTitle)
	if _, err := w.Write([]byte(`<h1 id="header-title" class="header-title" hx-swap-oob="outerHTML">` + safeTitle + `</h1>`)); err != nil {
		h.logger().Error("failed to write partial header title", "error", err)
		return
	}

	if err := h.T.RenderPartial(w, ContentTemplateFor(layout.CurrentPage), data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "partial content render")
		return
	}
}

func (h *UIHandlers) invokePageFetch(
	r *http.Request,
	fetchFn func(ctx context.Context, data map[string]any) error,
	data map[string]any,
) error {
	if fetchFn == nil {
		return nil
	}
	return fetchFn(r.Context(), data)
}

func markPageError(data map[string]any) {
	if _, ok := data["Error"]; !ok {
		data["Error"] = "Some content could not be loaded. Please try again."
	}
}

// handleSessionRejected runs when the backend rejected the session's
// credentials mid-request. The local session is destroyed and the
// browser is sent to the login page, exactly once per request.
func (h *UIHandlers) handleSessionRejected(w http.ResponseWriter, r *http.Request) {
	if session := GetSessionFromContext(r.Context()); session != nil {
		if err := h.Auth.DestroySession(r.Context(), session.ID); err != nil {
			h.logger().Warn("failed to destroy rejected session", "error", err)
		}
	}
	clearCookie(w, r, SessionCookieName)
	redirectToLogin(w, r)
}

// sessionFromRequest returns the non-guest session for an admin handler.
// The auth middleware guarantees presence; a missing session here means
// the handler was wired without the guard.
func (h *UIHandlers) sessionFromRequest(r *http.Request) *domainauth.Session {
	return GetSessionFromContext(r.Context())
}

// deleteHandlerOpts encapsulates common delete-handling behavior for UI endpoints.
type deleteHandlerOpts struct {
	Delete       func(ctx context.Context, id string) error
	RedirectPath string
	Toast        string
	StaleNotice  string
	OnError      func(http.ResponseWriter, *http.Request, error)
}

// handleDelete coordinates delete flows shared across UI handlers.
func (h *UIHandlers) handleDelete(w http.ResponseWriter, r *http.Request, opts deleteHandlerOpts) {
	id := r.PathValue("id")
	if id == "" {
		h.NotFound(w, r)
		return
	}

	if err := opts.Delete(r.Context(), id); err != nil {
		switch {
		case apperrors.IsUnauthorized(err):
			h.handleSessionRejected(w, r)
		case apperrors.IsNotFound(err):
			// Already gone; reload the list so it shows current state.
			h.redirectStale(w, r, opts.RedirectPath, opts.StaleNotice)
		case opts.OnError != nil:
			opts.OnError(w, r, err)
		default:
			h.logger().ErrorContext(r.Context(), "delete failed", "error", err, "path", r.URL.Path)
			http.Error(w, "Unable to delete resource.", http.StatusInternalServerError)
		}
		return
	}

	if IsHTMX(r) {
		if opts.Toast != "" {
			triggerToast(w, opts.Toast, "success")
		}
		HTMX(w).Redirect(opts.RedirectPath)
		return
	}
	http.Redirect(w, r, opts.RedirectPath, http.StatusSeeOther)
}

// triggerToast sends a standardized HX-Trigger payload for toast notifications.
// Centralizing this avoids repeating the boilerplate map construction across handlers.
func triggerToast(w http.ResponseWriter, message, toastType string) {
	if w == nil || strings.TrimSpace(message) == "" {
		return
	}
	HTMX(w).Trigger("showToast", map[string]any{
		"message": message,
		"type":    strings.TrimSpace(toastType),
	})
}

// FormFrameOpts captures the parameters required to normalize common form data.
type FormFrameOpts struct {
	R           *http.Request
	Data        map[string]any
	DefaultMode FormMode
	MetaForMode func(FormMode) PageMeta
}

// prepareFormFrame normalizes common form rendering fields (Errors, Mode, base layout).
// Returns the hydrated data map and the resolved form mode for further customization.
func prepareFormFrame(opts FormFrameOpts) (map[string]any, FormMode) {
	data := opts.Data
	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data["Errors"]; !ok || data["Errors"] == nil {
		data["Errors"] = map[string]string{}
	}

	mode := resolveFormMode(data["Mode"], opts.DefaultMode)
	data["Mode"] = string(mode)

	if opts.MetaForMode != nil && opts.R != nil {
		maps.Copy(data, basePageData(opts.R, opts.MetaForMode(mode)))
	}

	return data, mode
}

// resolveFormMode coerces assorted Mode representations to a FormMode value.
func resolveFormMode(raw any, fallback FormMode) FormMode {
	switch v := raw.(type) {
	case FormMode:
		if v != "" {
			return v
		}
	case string:
		candidate := FormMode(strings.TrimSpace(v))
		if candidate != "" {
			return candidate
		}
	}
	return fallback
}

func layoutFromProvider(data any) *viewmodel.Layout {
	provider, ok := data.(viewmodel.LayoutProvider)
	if !ok {
		return nil
	}
	layout := provider.LayoutData()
	return &layout
}

func layoutFromMap(data any) viewmodel.Layout {
	m, mapOK := data.(map[string]any)
	if !mapOK {
		return viewmodel.Layout{}
	}

	layout := viewmodel.Layout{}
	if v, titleOK := m["Title"].(string); titleOK {
		layout.Title = v
	}
	if v, pageTitleOK := m["PageTitle"].(string); pageTitleOK {
		layout.PageTitle = v
	}
	if v, currentPageOK := m["CurrentPage"].(string); currentPageOK {
		layout.CurrentPage = v
	}
	return layout
}

func extractLayoutInfo(data any) viewmodel.Layout {
	if layout := layoutFromProvider(data); layout != nil {
		return *layout
	}

	if layout, ok := data.(viewmodel.Layout); ok {
		return layout
	}

	if layout, ok := data.(*viewmodel.Layout); ok && layout != nil {
		return *layout
	}

	return layoutFromMap(data)
}

// logAndRenderTemplateError logs template errors and renders them in dev mode.
func (h *UIHandlers) logAndRenderTemplateError(w http.ResponseWriter, r *http.Request, err error, context string) {
	h.logger().Error("template rendering failed",
		"error", err,
		"context", context,
		"path", r.URL.Path,
		"method", r.Method,
	)

	// In dev mode, show detailed error in the response
	if h.IsDev {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		errHTML := html.EscapeString(err.Error())
		pathHTML := html.EscapeString(r.URL.Path)
		contextHTML := html.EscapeString(context)
		if _, writeErr := w.Write([]byte(`
			<div style="padding: 20px; background: #fee; border: 2px solid #c33; border-radius: 4px; margin: 20px; font-family: monospace;">
				<h2 style="color: #c33; margin-top: 0;">Template Rendering Error</h2>
				<p><strong>Context:</strong> ` + contextHTML + `</p>
				<p><strong>Path:</strong> ` + pathHTML + `</p>
				<p><strong>Error:</strong></p>
				<pre style="background: #fff; padding: 10px; border: 1px solid #ccc; overflow-x: auto;">` + errHTML + `</pre>
			</div>
		`)); writeErr != nil {
			h.logger().Error("failed to write template error response", "error", writeErr)
		}
		return
	}

	// In production, show generic error
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
