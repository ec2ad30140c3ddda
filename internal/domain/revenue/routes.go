package revenue

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sqooli/partner-api/internal/middleware"
	"github.com/sqooli/partner-api/internal/pkg/access"
)

// Routes returns revenue routes. Settlement is mounted under transactions.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequirePermission(access.DashboardRead))
		r.Get("/logs", h.ListLogs)
		r.Get("/timeline", h.Timeline)
		r.Get("/summary", h.Summary)
		r.Get("/preview", h.Preview)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequirePermission(access.AllAccess))
		r.Post("/logs", h.LogRevenue)
		r.Get("/top", h.Top)
	})

	return r
}
