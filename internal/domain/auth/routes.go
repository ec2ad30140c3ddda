package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns auth routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/logout", h.Logout)
		r.Get("/me", h.Me)
		r.Post("/password", h.ChangePassword)
	})

	return r
}
