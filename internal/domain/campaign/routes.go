package campaign

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sqooli/partner-api/internal/middleware"
	"github.com/sqooli/partner-api/internal/pkg/access"
)

// Routes returns campaign routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequirePermission(access.CampaignsRead))
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Get("/{id}/promo-codes", h.ListPromoCodes)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequirePermission(access.CampaignsWrite))
		r.Post("/", h.Create)
		r.Patch("/{id}", h.Update)
		r.Patch("/{id}/status", h.SetStatus)
		r.Post("/{id}/promo-codes", h.CreatePromoCode)
	})

	return r
}

// PromoCodeRoutes returns promo code routes
func (h *Handler) PromoCodeRoutes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.With(middleware.RequirePermission(access.CampaignsRead)).Get("/{ref}", h.GetPromoCode)
	r.With(middleware.RequirePermission(access.CampaignsWrite)).Patch("/{ref}", h.UpdatePromoCode)
	r.With(middleware.RequirePermission(access.CampaignsWrite)).Post("/{ref}/toggle", h.TogglePromoCode)

	return r
}
