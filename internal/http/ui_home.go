package httpx

import (
	"context"
	"net/http"

	"github.com/nmoreno/portfolio-ui/internal/domain/model"
	apperrors "github.com/nmoreno/portfolio-ui/internal/errors"
	"github.com/nmoreno/portfolio-ui/internal/http/validation"
)

// Home renders the public portfolio page.
// GET /.
func (h *UIHandlers) Home(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{
			Title:       "Portfolio",
			PageTitle:   "Portfolio",
			CurrentPage: PageHome,
		},
		Fetch: func(ctx context.Context, data map[string]any) error {
			sess := GetSessionFromContext(r.Context())

			projects, err := h.ProjectSvc.ListPublic(ctx, sess)
			if err != nil {
				return err
			}
			experience, err := h.ExperienceSvc.List(ctx, sess)
			if err != nil {
				return err
			}

			featured := make([]model.Project, 0, len(projects))
			rest := make([]model.Project, 0, len(projects))
			for _, p := range projects {
				if p.Featured {
					featured = append(featured, p)
				} else {
					rest = append(rest, p)
				}
			}

			data["FeaturedProjects"] = featured
			data["Projects"] = rest
			data["Experience"] = experience
			return nil
		},
	})
}

func contactPageMeta() PageMeta {
	return PageMeta{
		Title:       "Contact · Portfolio",
		PageTitle:   "Contact",
		CurrentPage: PageContact,
	}
}

// ContactPage renders the public contact form.
// GET /contact.
func (h *UIHandlers) ContactPage(w http.ResponseWriter, r *http.Request) {
	// The submission needs a session to carry upstream CSRF state.
	if err := h.ensureGuestSession(w, r); err != nil {
		h.logger().ErrorContext(r.Context(), "failed to create guest session", "error", err)
	}

	h.renderContactPage(w, r, contactPageData{})
}

// ContactSubmit forwards a visitor message to the backend.
// POST /contact.
func (h *UIHandlers) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form := model.ContactRequest{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Message: r.PostFormValue("message"),
	}

	if errs := validation.New().
		Validate("name", form.Name,
			validation.Required("Name"), validation.MaxLen("Name", 120)).
		Validate("email", form.Email,
			validation.Required("Email"), validation.Email("Email"), validation.MaxLen("Email", 254)).
		Validate("message", form.Message,
			validation.Required("Message"), validation.MaxLen("Message", 5000)).
		Errors(); errs != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		h.renderContactPage(w, r, contactPageData{
			Form:        form,
			Error:       errMsgFixBelow,
			FieldErrors: errs,
		})
		return
	}

	session := GetSessionFromContext(r.Context())
	if session == nil {
		guest, err := h.Auth.NewGuestSession(r.Context())
		if err != nil {
			h.logger().ErrorContext(r.Context(), "failed to create guest session", "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		setSessionCookie(w, r, guest)
		session = &guest
	}

	if err := h.MessageSvc.Submit(r.Context(), session, form); err != nil {
		h.renderContactFailure(w, r, form, err)
		return
	}

	h.renderContactPage(w, r, contactPageData{Success: true})
}

func (h *UIHandlers) renderContactFailure(
	w http.ResponseWriter,
	r *http.Request,
	form model.ContactRequest,
	err error,
) {
	if apperrors.IsValidation(err) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		h.renderContactPage(w, r, contactPageData{
			Form:  form,
			Error: apperrors.GetMessage(err),
		})
		return
	}

	h.logger().ErrorContext(r.Context(), "contact submission failed", "error", err)
	w.WriteHeader(http.StatusBadGateway)
	h.renderContactPage(w, r, contactPageData{
		Form:  form,
		Error: "Your message could not be sent right now. Please try again later.",
	})
}

type contactPageData struct {
	Form        model.ContactRequest
	Success     bool
	Error       string
	FieldErrors map[string]string
}

func (h *UIHandlers) renderContactPage(w http.ResponseWriter, r *http.Request, p contactPageData) {
	builder := NewTemplateData(basePageData(r, contactPageMeta())).
		WithFormData(p.Form).
		WithFieldErrors(p.FieldErrors).
		With("Success", p.Success)
	if p.Error != "" {
		builder.WithError(p.Error)
	}

	h.renderAppPage(w, r, builder.Build())
}
