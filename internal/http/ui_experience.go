package httpx

import (
	"context"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/nmoreno/portfolio-ui/internal/domain/model"
	apperrors "github.com/nmoreno/portfolio-ui/internal/errors"
	"github.com/nmoreno/portfolio-ui/internal/http/validation"
)

const (
	experienceListPath = "/admin/experience"
	staleEntryNotice   = "Esta entrada ya no existe."
)

// isoDatePattern matches the backend's date strings: "2024-01" or "2024-01-15".
var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}(-\d{2})?$`)

// ExperienceList renders the experience admin listing.
// GET /admin/experience.
func (h *UIHandlers) ExperienceList(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{
			Title:       "Experience · Portfolio Admin",
			PageTitle:   "Experience",
			CurrentPage: PageExperience,
		},
		Fetch: func(ctx context.Context, data map[string]any) error {
			entries, err := h.ExperienceSvc.List(ctx, h.sessionFromRequest(r))
			if err != nil {
				return err
			}
			data["Entries"] = entries
			data["TotalCount"] = len(entries)
			data["CurrentCount"] = countCurrentEntries(entries)
			if notice := strings.TrimSpace(r.URL.Query().Get("notice")); notice != "" {
				data["Notice"] = notice
			}
			return nil
		},
	})
}

func countCurrentEntries(entries []model.ExperienceEntry) int {
	n := 0
	for _, e := range entries {
		if e.IsCurrent {
			n++
		}
	}
	return n
}

func experienceMetaForMode(mode FormMode) PageMeta {
	title := "New entry"
	if mode == FormModeEdit {
		title = "Edit entry"
	}
	return PageMeta{
		Title:       title + " · Portfolio Admin",
		PageTitle:   title,
		CurrentPage: PageExperienceForm,
	}
}

// ExperienceNew renders an empty create form.
// GET /admin/experience/new.
func (h *UIHandlers) ExperienceNew(w http.ResponseWriter, r *http.Request) {
	h.renderExperienceForm(w, r, map[string]any{
		"Mode": FormModeCreate,
		"Form": experienceFormData{},
	})
}

// ExperienceEdit renders the form pre-filled with an existing entry.
// GET /admin/experience/{id}/edit.
//
// The backend has no fetch-by-ID, so the entry comes from the listing.
// A missing ID means the entry was deleted elsewhere; reload the list.
func (h *UIHandlers) ExperienceEdit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.NotFound(w, r)
		return
	}

	entries, err := h.ExperienceSvc.List(r.Context(), h.sessionFromRequest(r))
	if err != nil {
		h.handleListFetchError(w, r, err)
		return
	}

	for _, entry := range entries {
		if entry.ID == id {
			h.renderExperienceForm(w, r, map[string]any{
				"Mode": FormModeEdit,
				"ID":   entry.ID,
				"Form": experienceFormFromEntry(entry),
			})
			return
		}
	}

	h.redirectStale(w, r, experienceListPath, staleEntryNotice)
}

// ExperienceCreate handles the create form submission.
// POST /admin/experience.
func (h *UIHandlers) ExperienceCreate(w http.ResponseWriter, r *http.Request) {
	sess := h.sessionFromRequest(r)
	HandleForm(h, w, r, FormHandlerOpts[experienceFormData]{
		Parse: parseExperienceForm,
		Submit: func(ctx context.Context, form experienceFormData) error {
			_, err := h.ExperienceSvc.Create(ctx, sess, form.toRequest())
			return err
		},
		Render: func(w http.ResponseWriter, r *http.Request, form experienceFormData, errMsg string, fieldErrs map[string]string) {
			h.renderExperienceFormWithErrors(w, r, experienceFormRender{
				Mode: FormModeCreate, Form: form, Error: errMsg, FieldErrors: fieldErrs,
			})
		},
		SuccessURL:  experienceListPath,
		Toast:       "Entry created.",
		StaleNotice: staleEntryNotice,
	})
}

// ExperienceUpdate handles the edit form submission.
// POST /admin/experience/{id}.
func (h *UIHandlers) ExperienceUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.NotFound(w, r)
		return
	}

	sess := h.sessionFromRequest(r)
	HandleForm(h, w, r, FormHandlerOpts[experienceFormData]{
		Parse: parseExperienceForm,
		Submit: func(ctx context.Context, form experienceFormData) error {
			_, err := h.ExperienceSvc.Update(ctx, sess, id, form.toRequest())
			return err
		},
		Render: func(w http.ResponseWriter, r *http.Request, form experienceFormData, errMsg string, fieldErrs map[string]string) {
			h.renderExperienceFormWithErrors(w, r, experienceFormRender{
				Mode: FormModeEdit, ID: id, Form: form, Error: errMsg, FieldErrors: fieldErrs,
			})
		},
		SuccessURL:  experienceListPath,
		Toast:       "Entry updated.",
		StaleNotice: staleEntryNotice,
	})
}

// ExperienceDelete removes an entry.
// POST /admin/experience/{id}/delete.
func (h *UIHandlers) ExperienceDelete(w http.ResponseWriter, r *http.Request) {
	sess := h.sessionFromRequest(r)
	h.handleDelete(w, r, deleteHandlerOpts{
		Delete: func(ctx context.Context, id string) error {
			return h.ExperienceSvc.Delete(ctx, sess, id)
		},
		RedirectPath: experienceListPath,
		Toast:        "Entry deleted.",
		StaleNotice:  staleEntryNotice,
	})
}

// handleListFetchError maps a listing failure for page handlers that
// fetch outside the PageSpec flow.
func (h *UIHandlers) handleListFetchError(w http.ResponseWriter, r *http.Request, err error) {
	if apperrors.IsUnauthorized(err) {
		h.handleSessionRejected(w, r)
		return
	}
	h.logger().ErrorContext(r.Context(), "list fetch failed", "error", err, "path", r.URL.Path)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// experienceFormData mirrors the form fields as submitted.
type experienceFormData struct {
	Role        string
	Company     string
	StartDate   string
	EndDate     string
	IsCurrent   bool
	Description string
	Tags        string
	Order       int
}

func experienceFormFromEntry(entry model.ExperienceEntry) experienceFormData {
	endDate := ""
	if entry.EndDate != nil {
		endDate = *entry.EndDate
	}
	return experienceFormData{
		Role:        entry.Role,
		Company:     entry.Company,
		StartDate:   entry.StartDate,
		EndDate:     endDate,
		IsCurrent:   entry.IsCurrent,
		Description: entry.Description,
		Tags:        strings.Join(entry.Tags, ", "),
		Order:       entry.Order,
	}
}

func (f experienceFormData) toRequest() model.ExperienceRequest {
	req := model.ExperienceRequest{
		Role:        f.Role,
		Company:     f.Company,
		StartDate:   f.StartDate,
		IsCurrent:   f.IsCurrent,
		Description: f.Description,
		Tags:        model.ParseTags(f.Tags),
		Order:       f.Order,
	}
	if !f.IsCurrent && strings.TrimSpace(f.EndDate) != "" {
		end := strings.TrimSpace(f.EndDate)
		req.EndDate = &end
	}
	return req
}

// parseExperienceForm extracts and validates the experience form.
func parseExperienceForm(r *http.Request) (experienceFormData, map[string]string) {
	form := experienceFormData{
		Role:        strings.TrimSpace(r.PostFormValue("role")),
		Company:     strings.TrimSpace(r.PostFormValue("company")),
		StartDate:   strings.TrimSpace(r.PostFormValue("start_date")),
		EndDate:     strings.TrimSpace(r.PostFormValue("end_date")),
		IsCurrent:   r.PostFormValue("is_current") != "",
		Description: strings.TrimSpace(r.PostFormValue("description")),
		Tags:        r.PostFormValue("tags"),
	}
	if rawOrder := strings.TrimSpace(r.PostFormValue("order")); rawOrder != "" {
		if n, err := strconv.Atoi(rawOrder); err == nil {
			form.Order = n
		}
	}

	fv := validation.New().
		Validate("role", form.Role,
			validation.Required("Role"), validation.MaxLen("Role", 255)).
		Validate("company", form.Company,
			validation.Required("Company"), validation.MaxLen("Company", 255)).
		Validate("start_date", form.StartDate,
			validation.Required("Start date"),
			validation.Pattern("Start date", isoDatePattern, "must look like 2024-01 or 2024-01-15")).
		Validate("end_date", form.EndDate,
			validation.Optional(validation.Pattern("End date", isoDatePattern, "must look like 2024-01 or 2024-01-15")))

	if !form.IsCurrent && form.EndDate != "" && form.StartDate != "" && form.EndDate < form.StartDate {
		fv.Validate("end_date", "", func(string) string { return "End date cannot be before start date" })
	}

	return form, fv.Errors()
}

type experienceFormRender struct {
	Mode        FormMode
	ID          string
	Form        experienceFormData
	Error       string
	FieldErrors map[string]string
}

func (h *UIHandlers) renderExperienceFormWithErrors(w http.ResponseWriter, r *http.Request, p experienceFormRender) {
	data := map[string]any{
		"Mode": p.Mode,
		"Form": p.Form,
	}
	if p.ID != "" {
		data["ID"] = p.ID
	}
	if p.Error != "" {
		data["Error"] = p.Error
	}
	if len(p.FieldErrors) > 0 {
		data["Errors"] = p.FieldErrors
	}
	h.renderExperienceForm(w, r, data)
}

func (h *UIHandlers) renderExperienceForm(w http.ResponseWriter, r *http.Request, data map[string]any) {
	hydrated, _ := prepareFormFrame(FormFrameOpts{
		R:           r,
		Data:        data,
		DefaultMode: FormModeCreate,
		MetaForMode: experienceMetaForMode,
	})
	h.renderAppPage(w, r, hydrated)
}
