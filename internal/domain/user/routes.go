package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sqooli/partner-api/internal/middleware"
	"github.com/sqooli/partner-api/internal/pkg/access"
)

// Routes returns user routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.With(middleware.RequirePermission(access.UsersRead)).Get("/", h.List)
	r.With(middleware.RequirePermission(access.UsersRead)).Get("/{id}", h.GetByID)
	r.With(middleware.RequirePermission(access.UsersWrite)).Post("/", h.Create)
	r.With(middleware.RequirePermission(access.UsersWrite)).Patch("/{id}", h.UpdateProfile)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequirePermission(access.UsersAdmin))
		r.Put("/{id}/permissions", h.UpdatePermissions)
		r.Patch("/{id}/active", h.SetActive)
		r.Post("/{id}/reset-password", h.ResetPassword)
	})

	return r
}
