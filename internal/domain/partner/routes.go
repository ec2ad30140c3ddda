package partner

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sqooli/partner-api/internal/middleware"
	"github.com/sqooli/partner-api/internal/pkg/access"
)

// Routes returns partner routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.With(middleware.RequirePermission(access.SettingsRead)).Get("/{id}", h.Get)
	r.With(middleware.RequirePermission(access.SettingsAdmin)).Patch("/{id}", h.Update)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequirePermission(access.AllAccess))
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Patch("/{id}/status", h.SetStatus)
	})

	return r
}
