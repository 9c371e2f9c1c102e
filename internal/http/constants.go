package httpx

// CurrentPage constants define the page identifiers used in templates and navigation.
// These constants ensure consistency across UI handlers and template mapping.
const (
	// Public pages.
	PageHome    = "home"
	PageContact = "contact"

	// Admin pages.
	PageLogin          = "login"
	PageDashboard      = "dashboard"
	PageExperience     = "experience"
	PageExperienceForm = "experience-form"
	PageMessages       = "messages"
	PageMessageView    = "message-view"
)

// Route paths referenced from middleware and handlers.
const (
	// LoginPath is the admin login page; unauthenticated admin requests
	// are redirected here with the original destination in redirect_uri.
	LoginPath = "/admin/login"
	// DashboardPath is the landing page after a successful login.
	DashboardPath = "/admin"
)

// StrTrue is the canonical "true" value for htmx boolean headers.
const StrTrue = "true"

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
)

// FormMode represents the mode of a form (create or edit).
// Using a dedicated type improves compile-time checks and prevents typos.
type FormMode string

const (
	// FormModeEdit indicates the form is in edit mode.
	FormModeEdit FormMode = "edit"
	// FormModeCreate indicates the form is in create mode.
	FormModeCreate FormMode = "create"
)

// Content templates are defined once and reused to avoid per-call allocations.
//
//nolint:gochecknoglobals // static read-only lookup for templates; avoids per-call allocations
var contentTemplates = map[string]string{
	PageHome:           "home-content",
	PageContact:        "contact-content",
	PageLogin:          "login-content",
	PageDashboard:      "dashboard-content",
	PageExperience:     "experience-content",
	PageExperienceForm: "experience-form-content",
	PageMessages:       "messages-content",
	PageMessageView:    "message-view-content",
}

// ContentTemplateMap returns the mapping from CurrentPage to template name.
// This is the single source of truth for page-to-template mapping.
func ContentTemplateMap() map[string]string { return contentTemplates }

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to dashboard-content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := ContentTemplateMap()[currentPage]; ok {
		return name
	}
	return "dashboard-content"
}
