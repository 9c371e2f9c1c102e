package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/nmoreno/portfolio-ui/internal/domain/model"
	apperrors "github.com/nmoreno/portfolio-ui/internal/errors"
)

const (
	messagesListPath   = "/admin/messages"
	staleMessageNotice = "Este mensaje ya no existe."
)

// MessagesList renders the inbox with optional status and text filters.
// GET /admin/messages?status=<status>&q=<query>.
func (h *UIHandlers) MessagesList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := model.MessagesFilter{Query: strings.TrimSpace(q.Get("q"))}
	statusParam := q.Get("status")
	if status, ok := model.ParseMessageStatus(statusParam); ok {
		filter.Status = status
	} else {
		statusParam = ""
	}

	h.Page(w, r, PageSpec{
		Meta: PageMeta{
			Title:       "Messages · Portfolio Admin",
			PageTitle:   "Messages",
			CurrentPage: PageMessages,
		},
		Fetch: func(ctx context.Context, data map[string]any) error {
			messages, stats, err := h.MessageSvc.Inbox(ctx, h.sessionFromRequest(r), filter)
			if err != nil {
				return err
			}
			data["Messages"] = messages
			data["FilterQuery"] = filter.Query
			data["FilterStatus"] = statusParam
			data["Stats"] = stats
			data["NewCount"] = stats.New
			if notice := strings.TrimSpace(q.Get("notice")); notice != "" {
				data["Notice"] = notice
			}
			return nil
		},
	})
}

// MessageView renders a single message. Opening a new message marks it
// read best-effort; a failed mark never blocks the view.
// GET /admin/messages/{id}.
func (h *UIHandlers) MessageView(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.NotFound(w, r)
		return
	}

	sess := h.sessionFromRequest(r)
	msg, err := h.MessageSvc.Get(r.Context(), sess, id)
	if err != nil {
		switch {
		case apperrors.IsUnauthorized(err):
			h.handleSessionRejected(w, r)
		case apperrors.IsNotFound(err):
			h.redirectStale(w, r, messagesListPath, staleMessageNotice)
		default:
			h.logger().ErrorContext(r.Context(), "message fetch failed", "error", err, "id", id)
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	msg = h.MessageSvc.MarkOpened(r.Context(), sess, msg)

	h.Page(w, r, PageSpec{
		Meta: PageMeta{
			Title:       "Message · Portfolio Admin",
			PageTitle:   "Message from " + msg.Name,
			CurrentPage: PageMessageView,
		},
		Fetch: func(ctx context.Context, data map[string]any) error {
			data["Message"] = msg
			return nil
		},
	})
}

// MessageUpdateStatus transitions a message between states.
// POST /admin/messages/{id}/status.
func (h *UIHandlers) MessageUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	status, ok := model.ParseMessageStatus(r.PostFormValue("status"))
	if !ok {
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}

	// Default back to the inbox; the message page passes return_to to
	// stay in place after the transition.
	target := safeRedirectPath(r.PostFormValue("return_to"))
	if target == "/" {
		target = messagesListPath
	}

	sess := h.sessionFromRequest(r)
	if _, err := h.MessageSvc.UpdateStatus(r.Context(), sess, id, status); err != nil {
		switch {
		case apperrors.IsUnauthorized(err):
			h.handleSessionRejected(w, r)
		case apperrors.IsNotFound(err):
			h.redirectStale(w, r, messagesListPath, staleMessageNotice)
		default:
			h.logger().ErrorContext(r.Context(), "status update failed", "error", err, "id", id)
			http.Error(w, "Unable to update message.", http.StatusInternalServerError)
		}
		return
	}

	if IsHTMX(r) {
		triggerToast(w, "Message marked as "+status.String()+".", "success")
		HTMX(w).Redirect(target)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// MessageDelete removes a message.
// POST /admin/messages/{id}/delete.
func (h *UIHandlers) MessageDelete(w http.ResponseWriter, r *http.Request) {
	sess := h.sessionFromRequest(r)
	h.handleDelete(w, r, deleteHandlerOpts{
		Delete: func(ctx context.Context, id string) error {
			return h.MessageSvc.Delete(ctx, sess, id)
		},
		RedirectPath: messagesListPath,
		Toast:        "Message deleted.",
		StaleNotice:  staleMessageNotice,
	})
}
