package program

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sqooli/partner-api/internal/middleware"
	"github.com/sqooli/partner-api/internal/pkg/access"
)

// Routes returns program routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.With(middleware.RequirePermission(access.ProgramsRead)).Get("/", h.List)
	r.With(middleware.RequirePermission(access.ProgramsRead)).Get("/{id}", h.Get)
	r.With(middleware.RequirePermission(access.ProgramsWrite)).Post("/", h.Create)
	r.With(middleware.RequirePermission(access.ProgramsWrite)).Patch("/{id}", h.Update)

	return r
}
