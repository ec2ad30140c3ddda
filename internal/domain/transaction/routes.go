package transaction

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sqooli/partner-api/internal/middleware"
	"github.com/sqooli/partner-api/internal/pkg/access"
)

// Routes returns transaction routes. settle, when set, is mounted at
// POST /{id}/settle.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler, settle http.HandlerFunc) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.With(middleware.RequirePermission(access.WalletRead)).Get("/", h.List)
	r.With(middleware.RequirePermission(access.WalletRead)).Get("/{id}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequirePermission(access.AllAccess))
		r.Post("/", h.Record)
		r.Patch("/{id}/status", h.UpdateStatus)
		r.Post("/{id}/verify", h.Verify)
		if settle != nil {
			r.Post("/{id}/settle", settle)
		}
	})

	return r
}
