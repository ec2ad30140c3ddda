package role

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sqooli/partner-api/internal/middleware"
	"github.com/sqooli/partner-api/internal/pkg/access"
)

// Routes returns role routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequirePermission(access.UsersRead))
		r.Get("/", h.List)
		r.Get("/by-name/{name}", h.GetByName)
		r.Get("/{id}", h.GetByID)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequirePermission(access.AllAccess))
		r.Post("/", h.Create)
		r.Patch("/{id}", h.Update)
		r.Put("/{id}/permissions", h.AssignPermissions)
		r.Delete("/{id}", h.Delete)
		r.Post("/seed", h.Seed)
	})

	return r
}
