package notification

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sqooli/partner-api/internal/middleware"
	"github.com/sqooli/partner-api/internal/pkg/access"
)

// Routes returns notification router. Any user of a partner reads its
// notifications; only all_access may post new ones.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/", h.List)
	r.Get("/unread-count", h.GetUnreadCount)
	r.Post("/{id}/read", h.MarkAsRead)
	r.Post("/read-all", h.MarkAllAsRead)

	r.With(middleware.RequirePermission(access.AllAccess)).Post("/", h.Create)

	return r
}
