package enrollment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sqooli/partner-api/internal/middleware"
	"github.com/sqooli/partner-api/internal/pkg/access"
)

// Routes returns enrollment routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequirePermission(access.CampaignsRead))
		r.Get("/", h.List)
		r.Get("/by-transaction/{id}", h.GetByTransaction)
		r.Get("/by-code/{code}", h.GetByCode)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequirePermission(access.CampaignsWrite))
		r.Post("/", h.Create)
		r.Patch("/{id}/status", h.UpdateStatus)
	})

	return r
}
