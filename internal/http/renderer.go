package httpx

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nmoreno/portfolio-ui/internal/http/templates/core"
)

// TemplateRenderer renders full pages, HTMX partials, and the error page from
// a parsed template set. In dev mode templates and the critical CSS are
// re-read from disk on every render so edits show up without a restart.
type TemplateRenderer struct {
	tmpl        *template.Template
	fsys        fs.FS
	criticalCSS template.CSS
	cfg         TemplateRendererConfig
	logger      *slog.Logger
}

// TemplateRendererConfig configures template loading.
type TemplateRendererConfig struct {
	// FS is the filesystem holding templates, rooted at the templates dir.
	FS fs.FS
	// CriticalCSSPath is an optional on-disk path to the critical CSS file
	// inlined into the layout head. Empty disables inlining.
	CriticalCSSPath string
	// TemplatesDir is the on-disk templates dir used for dev hot reload.
	TemplatesDir string
	// IsDev enables hot reload of templates and critical CSS.
	IsDev  bool
	Logger *slog.Logger
}

// Template names rendered at the top level.
const (
	templateLayout = "layout"
	templateError  = "error-layout"
)

var templateGlobs = []string{"*.tmpl", "pages/*.tmpl", "partials/*.tmpl"}

// NewTemplateRenderer parses all templates from cfg.FS.
func NewTemplateRenderer(cfg TemplateRendererConfig) (*TemplateRenderer, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	r := &TemplateRenderer{
		fsys:   cfg.FS,
		cfg:    cfg,
		logger: cfg.Logger,
	}

	if err := r.loadCriticalCSS(); err != nil {
		return nil, err
	}

	tmpl, err := r.parse(cfg.FS)
	if err != nil {
		return nil, err
	}
	r.tmpl = tmpl

	return r, nil
}

func (r *TemplateRenderer) parse(fsys fs.FS) (*template.Template, error) {
	tmpl := template.New("")

	// The helper funcs need the final template set, which does not exist
	// until parsing finishes. Install them against a pointer that is filled
	// in afterwards.
	var parsed *template.Template
	tmpl = tmpl.Funcs(core.Funcs(core.Deps{
		Template:           &parsed,
		ContentTemplateFor: ContentTemplateFor,
	}))
	tmpl = tmpl.Funcs(template.FuncMap{
		"criticalCSS": func() template.CSS { return r.criticalCSS },
	})

	for _, glob := range templateGlobs {
		matches, err := fs.Glob(fsys, glob)
		if err != nil {
			return nil, fmt.Errorf("globbing templates %q: %w", glob, err)
		}
		if len(matches) == 0 {
			continue
		}
		tmpl, err = tmpl.ParseFS(fsys, glob)
		if err != nil {
			return nil, fmt.Errorf("parsing templates %q: %w", glob, err)
		}
	}

	parsed = tmpl
	return tmpl, nil
}

func (r *TemplateRenderer) loadCriticalCSS() error {
	if r.cfg.CriticalCSSPath == "" {
		return nil
	}
	css, err := os.ReadFile(filepath.Clean(r.cfg.CriticalCSSPath))
	if err != nil {
		if os.IsNotExist(err) {
			r.logger.Warn("critical CSS not found, skipping inline styles",
				slog.String("path", r.cfg.CriticalCSSPath))
			return nil
		}
		return fmt.Errorf("reading critical CSS: %w", err)
	}
	//nolint:gosec // our own stylesheet
	r.criticalCSS = template.CSS(css)
	return nil
}

// current returns the template set, re-parsing from disk in dev mode.
func (r *TemplateRenderer) current() (*template.Template, error) {
	if !r.cfg.IsDev || r.cfg.TemplatesDir == "" {
		return r.tmpl, nil
	}

	if err := r.loadCriticalCSS(); err != nil {
		r.logger.Warn("reloading critical CSS failed", slog.Any("error", err))
	}
	return r.parse(os.DirFS(r.cfg.TemplatesDir))
}

// RenderFull renders the full page layout with the given data.
func (r *TemplateRenderer) RenderFull(w io.Writer, data interface{}) error {
	return r.renderTemplate(w, templateLayout, data)
}

// RenderPartial renders only the named content template, for HTMX swaps.
func (r *TemplateRenderer) RenderPartial(w io.Writer, name string, data interface{}) error {
	return r.renderTemplate(w, name, data)
}

// RenderError renders the standalone error page.
func (r *TemplateRenderer) RenderError(w io.Writer, data interface{}) error {
	return r.renderTemplate(w, templateError, data)
}

// renderTemplate buffers output so a mid-render failure never leaks a partial
// page to the client.
func (r *TemplateRenderer) renderTemplate(w io.Writer, name string, data interface{}) error {
	tmpl, err := r.current()
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}

	buf := getBuffer()
	defer putBuffer(buf)

	if err := tmpl.ExecuteTemplate(buf, name, data); err != nil {
		return fmt.Errorf("executing template %q: %w", name, err)
	}

	_, err = buf.WriteTo(w)
	return err
}
