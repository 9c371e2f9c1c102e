package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	apperrors "github.com/nmoreno/portfolio-ui/internal/errors"
)

// FormHandlerOpts configures the generic admin form flow. T is the parsed
// request type handed to Submit.
type FormHandlerOpts[T any] struct {
	// Parse extracts the request from the form body. A non-nil error map
	// re-renders the form without touching the backend.
	Parse func(r *http.Request) (T, map[string]string)
	// Submit performs the mutation. The closure captures session and ID.
	Submit func(ctx context.Context, req T) error
	// Render re-renders the form with the submitted values and errors.
	Render func(w http.ResponseWriter, r *http.Request, req T, errMsg string, fieldErrs map[string]string)
	// SuccessURL is where the browser lands after a successful submit.
	SuccessURL string
	// Toast is an optional success toast message for HTMX clients.
	Toast string
	// StaleNotice is shown when the mutation's target no longer exists.
	StaleNotice string
	// OnNotFound handles a mutation whose target no longer exists.
	// Defaults to redirecting to SuccessURL with StaleNotice.
	OnNotFound func(w http.ResponseWriter, r *http.Request)
}

// HandleForm coordinates parse, submit, and error rendering for admin forms.
func HandleForm[T any](h *UIHandlers, w http.ResponseWriter, r *http.Request, opts FormHandlerOpts[T]) {
	if parseErr := r.ParseForm(); parseErr != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	req, fieldErrs := opts.Parse(r)
	if len(fieldErrs) > 0 {
		w.WriteHeader(http.StatusUnprocessableEntity)
		opts.Render(w, r, req, errMsgFixBelow, fieldErrs)
		return
	}

	if err := opts.Submit(r.Context(), req); err != nil {
		handleFormServiceError(h, w, r, err, req, opts)
		return
	}

	if IsHTMX(r) {
		if opts.Toast != "" {
			triggerToast(w, opts.Toast, "success")
		}
		HTMX(w).Redirect(opts.SuccessURL)
		return
	}
	http.Redirect(w, r, opts.SuccessURL, http.StatusSeeOther)
}

// handleFormServiceError maps service errors onto the form response.
// A free function because methods cannot carry type parameters.
func handleFormServiceError[T any](
	h *UIHandlers,
	w http.ResponseWriter,
	r *http.Request,
	err error,
	req T,
	opts FormHandlerOpts[T],
) {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded), apperrors.IsTimeout(err):
		w.WriteHeader(http.StatusRequestTimeout)
		opts.Render(w, r, req, "The request timed out. Please try again.", nil)

	case apperrors.IsUnauthorized(err):
		h.handleSessionRejected(w, r)

	case apperrors.IsValidation(err):
		w.WriteHeader(http.StatusUnprocessableEntity)
		var fieldErrs map[string]string
		if field := apperrors.GetField(err); field != "" {
			fieldErrs = map[string]string{field: apperrors.GetMessage(err)}
			opts.Render(w, r, req, errMsgFixBelow, fieldErrs)
			return
		}
		opts.Render(w, r, req, apperrors.GetMessage(err), nil)

	case apperrors.IsNotFound(err):
		if opts.OnNotFound != nil {
			opts.OnNotFound(w, r)
			return
		}
		h.redirectStale(w, r, opts.SuccessURL, opts.StaleNotice)

	default:
		h.logger().ErrorContext(r.Context(), "form submission failed", "error", err, "path", r.URL.Path)
		w.WriteHeader(http.StatusBadGateway)
		opts.Render(w, r, req, "Unable to save changes right now. Please try again.", nil)
	}
}

// redirectStale sends the browser back to the authoritative list when
// the item it tried to mutate no longer exists. Not an error: the list
// reload shows the current state, the notice explains the surprise.
func (h *UIHandlers) redirectStale(w http.ResponseWriter, r *http.Request, listURL, notice string) {
	if IsHTMX(r) {
		if notice != "" {
			triggerToast(w, notice, "info")
		}
		HTMX(w).Redirect(listURL)
		return
	}
	target := listURL
	if notice != "" {
		target = appendNoticeParam(listURL, notice)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// appendNoticeParam adds a notice query parameter for non-HTMX redirects
// so the destination page can surface it after the reload.
func appendNoticeParam(listURL, notice string) string {
	u, err := url.Parse(listURL)
	if err != nil {
		return listURL
	}
	q := u.Query()
	q.Set("notice", notice)
	u.RawQuery = q.Encode()
	return u.String()
}
