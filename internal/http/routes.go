package httpx

import (
	"bytes"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	portfolio "github.com/nmoreno/portfolio-ui"
	"github.com/nmoreno/portfolio-ui/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth       *service.AuthService
	Experience *service.ExperienceService
	Messages   *service.MessageService
	Projects   *service.ProjectService
	Dashboard  *service.DashboardService
	IsDev      bool         // Development mode flag for hot reloading, etc.
	Logger     *slog.Logger // Logger for template and HTTP errors (optional)
}

// NewRouter creates and configures a new HTTP router with browser middleware.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{Svc: services.Auth, Logger: services.Logger}
	registerAuthRoutes(mux, authHandlers)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	// Static assets at /static
	// Dev mode: serve from disk for hot reloading
	// Prod mode: serve from embedded FS
	mux.Handle("GET /static/", staticWithFallback(services.IsDev))

	// UI routes with template renderer
	uiHandlers := setupUIHandlers(services)
	if uiHandlers != nil {
		cfg := uiRouteConfig{Auth: services.Auth}
		registerUIRoutes(mux, uiHandlers, cfg)
	}

	// Wrap with NotFound handler and browser detection middleware
	handler := &notFoundHandler{
		mux:        mux,
		uiHandlers: uiHandlers,
	}

	// Apply browser detection middleware
	return BrowserDetection()(handler)
}

// setupUIHandlers creates UI handlers with a template renderer.
// In dev mode (services.IsDev=true), templates are loaded from disk for hot reloading.
// In production mode (services.IsDev=false), templates are loaded from embedded FS.
func setupUIHandlers(services RouterServices) *UIHandlers {
	var templateFS fs.FS
	if services.IsDev {
		templateFS = os.DirFS(TemplatePathFromRoot)
	} else {
		sub, err := fs.Sub(portfolio.TemplateFS, "frontend/templates")
		if err != nil {
			log.Printf("failed to create sub-filesystem for templates: %v; falling back to disk", err)
			sub = os.DirFS(TemplatePathFromRoot)
		}
		templateFS = sub
	}

	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		FS:              templateFS,
		CriticalCSSPath: filepath.Join("frontend", "static", "css", "critical.css"),
		TemplatesDir:    TemplatePathFromRoot,
		IsDev:           services.IsDev,
		Logger:          services.Logger,
	})
	if err != nil {
		if services.Logger != nil {
			services.Logger.Error("failed to create template renderer", slog.Any("error", err))
		} else {
			log.Printf("ERROR: failed to create template renderer: %v", err)
		}
		return nil
	}

	return &UIHandlers{
		T:             tr,
		Auth:          services.Auth,
		ExperienceSvc: services.Experience,
		MessageSvc:    services.Messages,
		ProjectSvc:    services.Projects,
		DashboardSvc:  services.Dashboard,
		IsDev:         services.IsDev,
		Logger:        services.Logger,
	}
}

// staticWithFallback serves /static/* assets.
// In dev mode (isDev=true), serves from disk with fallback for hot reloading.
// In production mode (isDev=false), serves from embedded FS.
func staticWithFallback(isDev bool) http.Handler {
	if isDev {
		mfs := multiFS{
			http.Dir("frontend/static"),
		}
		return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(mfs)))
	}

	staticSub, err := fs.Sub(portfolio.StaticFS, "frontend/static")
	if err != nil {
		log.Printf("failed to create sub-filesystem for static assets: %v", err)
		// Fallback to disk serving if embed fails
		return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static"))))
	}
	return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))
}

// multiFS provides fallback filesystem for dev mode.
type multiFS []http.FileSystem

func (m multiFS) Open(name string) (http.File, error) {
	for _, fsys := range m {
		f, err := fsys.Open(name)
		if err == nil {
			return f, nil
		}
		// ignore not-exist and try next, but return early on other errors
		if !os.IsNotExist(err) {
			return nil, err
		}
	}
	return nil, os.ErrNotExist
}

// staticWithCacheHeaders wraps a static file handler to add appropriate cache headers.
func staticWithCacheHeaders(handler http.Handler) http.Handler {
	// Content-hashed filenames (e.g., app.abc12345.js) including optional .map
	hashedFilePattern := regexp.MustCompile(`\.[a-f0-9]{8}\.(?:js|css)(?:\.map)?$`)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hashedFilePattern.MatchString(r.URL.Path) {
			// Hashed assets can be cached for a long time (1 year)
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		} else {
			// Non-hashed assets should not be cached
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
			w.Header().Set("Pragma", "no-cache")
			w.Header().Set("Expires", "0")
		}

		handler.ServeHTTP(w, r)
	})
}

// notFoundHandler wraps a ServeMux and provides custom 404 handling.
type notFoundHandler struct {
	mux        *http.ServeMux
	uiHandlers *UIHandlers
}

// ServeHTTP implements http.Handler and provides custom 404 handling.
func (h *notFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cw := newCaptureWriter(w)
	// Serve the request through the mux, capturing status, headers, and body
	h.mux.ServeHTTP(cw, r)

	// If the mux didn't handle the request (404), use our custom handler
	if cw.status == http.StatusNotFound {
		// For missing static assets, preserve the default file server response
		if strings.HasPrefix(r.URL.Path, "/static/") {
			cw.flushTo(w)
			return
		}
		if h.uiHandlers != nil {
			h.uiHandlers.NotFound(w, r)
			return
		}
		http.NotFound(w, r)
		return
	}

	// Not a 404: write the captured response
	cw.flushTo(w)
}

// captureWriter buffers headers, status and body so we can decide post-dispatch.
type captureWriter struct {
	rw     http.ResponseWriter
	header http.Header
	status int
	buf    bytes.Buffer
}

func newCaptureWriter(w http.ResponseWriter) *captureWriter {
	return &captureWriter{rw: w, header: make(http.Header), status: http.StatusOK}
}

func (c *captureWriter) Header() http.Header         { return c.header }
func (c *captureWriter) WriteHeader(code int)        { c.status = code }
func (c *captureWriter) Write(b []byte) (int, error) { return c.buf.Write(b) }

func (c *captureWriter) flushTo(w http.ResponseWriter) {
	for k, vs := range c.header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(c.status)
	if _, err := w.Write(c.buf.Bytes()); err != nil {
		log.Printf("failed to write captured response: %v", err)
	}
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("POST /auth/logout", h.Logout)
	mux.HandleFunc("GET /auth/status", h.Status)
}

// uiRouteConfig holds configuration for UI route registration.
type uiRouteConfig struct {
	Auth *service.AuthService
}

// publicWrap attaches CSRF protection and optional session resolution.
// Public pages still need both: the contact and login forms submit
// through our own CSRF gate and carry a guest session.
func (cfg uiRouteConfig) publicWrap() func(http.Handler) http.Handler {
	csrf := CSRFProtection(CSRFConfig{})
	if cfg.Auth == nil {
		return csrf
	}
	optional := OptionalAuth(cfg.Auth)
	return func(h http.Handler) http.Handler {
		return optional(csrf(h))
	}
}

// adminWrap chains CSRF protection with the browser auth guard.
func (cfg uiRouteConfig) adminWrap() func(http.Handler) http.Handler {
	csrf := CSRFProtection(CSRFConfig{})
	if cfg.Auth == nil {
		return csrf
	}
	guard := RequireAuthBrowser(cfg.Auth)
	return func(h http.Handler) http.Handler {
		return guard(csrf(h))
	}
}

// registerUIRoutes delegates to per-domain UI route registration functions.
func registerUIRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	registerUIPublicRoutes(mux, h, cfg)
	registerUILoginRoutes(mux, h, cfg)
	registerUIAdminRoutes(mux, h, cfg)
	registerUIExperienceRoutes(mux, h, cfg)
	registerUIMessagesRoutes(mux, h, cfg)
}

// registerUIPublicRoutes wires the visitor-facing portfolio pages.
func registerUIPublicRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	wrap := cfg.publicWrap()
	mux.Handle("GET /{$}", wrap(http.HandlerFunc(h.Home)))
	mux.Handle("GET /contact", wrap(http.HandlerFunc(h.ContactPage)))
	mux.Handle("POST /contact", wrap(http.HandlerFunc(h.ContactSubmit)))
}

// registerUILoginRoutes wires the credential login form.
func registerUILoginRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	wrap := cfg.publicWrap()
	mux.Handle("GET /admin/login", wrap(http.HandlerFunc(h.LoginPage)))
	mux.Handle("POST /admin/login", wrap(http.HandlerFunc(h.LoginSubmit)))
}

// registerUIAdminRoutes wires the dashboard landing page.
func registerUIAdminRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	wrapAdmin := cfg.adminWrap()
	mux.Handle("GET /admin", wrapAdmin(http.HandlerFunc(h.Dashboard)))
}

func registerUIExperienceRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	wrapAdmin := cfg.adminWrap()
	mux.Handle("GET /admin/experience", wrapAdmin(http.HandlerFunc(h.ExperienceList)))
	mux.Handle("GET /admin/experience/new", wrapAdmin(http.HandlerFunc(h.ExperienceNew)))
	mux.Handle("GET /admin/experience/{id}/edit", wrapAdmin(http.HandlerFunc(h.ExperienceEdit)))
	mux.Handle("POST /admin/experience", wrapAdmin(http.HandlerFunc(h.ExperienceCreate)))
	mux.Handle("POST /admin/experience/{id}", wrapAdmin(http.HandlerFunc(h.ExperienceUpdate)))
	mux.Handle("POST /admin/experience/{id}/delete", wrapAdmin(http.HandlerFunc(h.ExperienceDelete)))
}

func registerUIMessagesRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	wrapAdmin := cfg.adminWrap()
	mux.Handle("GET /admin/messages", wrapAdmin(http.HandlerFunc(h.MessagesList)))
	mux.Handle("GET /admin/messages/{id}", wrapAdmin(http.HandlerFunc(h.MessageView)))
	mux.Handle("POST /admin/messages/{id}/status", wrapAdmin(http.HandlerFunc(h.MessageUpdateStatus)))
	mux.Handle("POST /admin/messages/{id}/delete", wrapAdmin(http.HandlerFunc(h.MessageDelete)))
}
