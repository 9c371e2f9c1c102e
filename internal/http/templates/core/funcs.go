// Package core provides the template helper functions shared by all pages.
package core

import (
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/nmoreno/portfolio-ui/internal/http/uiutil"
)

// Deps carries what the helpers need from the renderer. Template is a double
// pointer because the *template.Template is still being parsed when the func
// map is installed.
type Deps struct {
	Template           **template.Template
	ContentTemplateFor func(currentPage string) string
}

// Funcs returns the core template helper functions.
func Funcs(deps Deps) template.FuncMap {
	return template.FuncMap{
		"sectionTmpl": func(currentPage string) string {
			if deps.ContentTemplateFor == nil {
				return ""
			}
			return deps.ContentTemplateFor(currentPage)
		},
		"renderSection": func(currentPage string, data interface{}) (template.HTML, error) {
			if deps.Template == nil || *deps.Template == nil {
				return "", fmt.Errorf("template not initialized")
			}
			name := deps.ContentTemplateFor(currentPage)
			var sb strings.Builder
			if err := (*deps.Template).ExecuteTemplate(&sb, name, data); err != nil {
				return "", fmt.Errorf("rendering section %q: %w", name, err)
			}
			//nolint:gosec // output of our own parsed templates
			return template.HTML(sb.String()), nil
		},
		"friendlyTime": func(t time.Time) string {
			return uiutil.FormatFriendlyDateTime(t)
		},
		"relativeTime": func(t time.Time) string {
			return uiutil.FriendlyRelativeTime(t)
		},
		"timeTag": func(t time.Time) template.HTML {
			if t.IsZero() {
				return template.HTML("<span>-</span>")
			}
			iso := t.UTC().Format(time.RFC3339)
			friendly := uiutil.FormatFriendlyDateTime(t)
			//nolint:gosec // both values are produced by time formatting
			return template.HTML(fmt.Sprintf(`<time datetime="%s">%s</time>`, iso, friendly))
		},
		"truncateText": func(s string, max int) string {
			return uiutil.TruncateWithEllipsis(s, max)
		},
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"contains": func(s, substr string) bool {
			return strings.Contains(s, substr)
		},
		"join": func(items []string, sep string) string {
			return strings.Join(items, sep)
		},
		"toJSON": func(v interface{}) (template.JS, error) {
			b, err := json.Marshal(v)
			if err != nil {
				return "", err
			}
			//nolint:gosec // marshalled server-side data
			return template.JS(b), nil
		},
	}
}
