package httpx

import (
	"context"
	"net/http"
)

// Dashboard renders the admin landing page with aggregate counters.
// GET /admin.
func (h *UIHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{
			Title:       "Dashboard · Portfolio Admin",
			PageTitle:   "Dashboard",
			CurrentPage: PageDashboard,
		},
		Fetch: func(ctx context.Context, data map[string]any) error {
			sess := h.sessionFromRequest(r)
			summary, err := h.DashboardSvc.Summary(ctx, sess)
			if err != nil {
				return err
			}
			data["Summary"] = summary
			return nil
		},
	})
}
