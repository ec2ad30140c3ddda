package wallet

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sqooli/partner-api/internal/middleware"
	"github.com/sqooli/partner-api/internal/pkg/access"
)

// Routes returns wallet routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequirePermission(access.WalletRead))
		r.Get("/{partner}", h.Get)
		r.Post("/{partner}/pin/verify", h.VerifyPin)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequirePermission(access.WalletWrite))
		r.Post("/", h.Create)
		r.Put("/{partner}/pin", h.ChangePin)
		r.Put("/{partner}/payout", h.UpdatePayout)
	})

	r.With(middleware.RequirePermission(access.AllAccess)).Post("/{partner}/credit", h.Credit)

	return r
}

// LimitRoutes returns withdrawal limit routes
func (h *Handler) LimitRoutes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequirePermission(access.WalletRead))
		r.Get("/", h.ListLimits)
		r.Get("/active", h.ActiveLimit)
		r.Post("/check", h.CheckAmount)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequirePermission(access.AllAccess))
		r.Post("/", h.CreateLimit)
		r.Patch("/{id}", h.UpdateLimit)
	})

	return r
}
