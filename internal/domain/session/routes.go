package session

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sqooli/partner-api/internal/middleware"
	"github.com/sqooli/partner-api/internal/pkg/access"
)

// Routes returns session routes. Validate and Delete take the token as
// their credential; issuing a session for another user needs all_access.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/validate", h.Validate)
	r.Delete("/", h.Delete)

	r.With(authMiddleware, middleware.RequirePermission(access.AllAccess)).Post("/", h.Create)

	return r
}
