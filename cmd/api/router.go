package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/sqooli/partner-api/internal/config"
	"github.com/sqooli/partner-api/internal/domain/audit"
	"github.com/sqooli/partner-api/internal/domain/auth"
	"github.com/sqooli/partner-api/internal/domain/campaign"
	"github.com/sqooli/partner-api/internal/domain/enrollment"
	"github.com/sqooli/partner-api/internal/domain/notification"
	"github.com/sqooli/partner-api/internal/domain/partner"
	"github.com/sqooli/partner-api/internal/domain/permission"
	"github.com/sqooli/partner-api/internal/domain/program"
	"github.com/sqooli/partner-api/internal/domain/revenue"
	"github.com/sqooli/partner-api/internal/domain/role"
	"github.com/sqooli/partner-api/internal/domain/session"
	"github.com/sqooli/partner-api/internal/domain/transaction"
	"github.com/sqooli/partner-api/internal/domain/user"
	"github.com/sqooli/partner-api/internal/domain/wallet"
	"github.com/sqooli/partner-api/internal/middleware"
	"github.com/sqooli/partner-api/internal/pkg/response"
)

const version = "1.0.0"

type routes struct {
	auth         *auth.Handler
	sessions     *session.Handler
	permissions  *permission.Handler
	roles        *role.Handler
	users        *user.Handler
	partners     *partner.Handler
	programs     *program.Handler
	campaigns    *campaign.Handler
	transactions *transaction.Handler
	enrollments  *enrollment.Handler
	revenue      *revenue.Handler
	wallets      *wallet.Handler
	notify       *notification.Handler
	audit        *audit.Handler
}

func newRouter(cfg *config.Config, h routes, authMiddleware func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(chimw.Compress(5))
	r.Use(middleware.Timeout(20 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, map[string]string{
			"status":  "ok",
			"version": version,
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", h.auth.Routes(authMiddleware))
		r.Mount("/sessions", h.sessions.Routes(authMiddleware))
		r.Mount("/permissions", h.permissions.Routes(authMiddleware))
		r.Mount("/roles", h.roles.Routes(authMiddleware))
		r.Mount("/users", h.users.Routes(authMiddleware))
		r.Mount("/partners", h.partners.Routes(authMiddleware))
		r.Mount("/programs", h.programs.Routes(authMiddleware))
		r.Mount("/campaigns", h.campaigns.Routes(authMiddleware))
		r.Mount("/promo-codes", h.campaigns.PromoCodeRoutes(authMiddleware))
		r.Mount("/transactions", h.transactions.Routes(authMiddleware, h.revenue.Settle))
		r.Mount("/enrollments", h.enrollments.Routes(authMiddleware))
		r.Mount("/revenue", h.revenue.Routes(authMiddleware))
		r.Mount("/wallets", h.wallets.Routes(authMiddleware))
		r.Mount("/withdrawal-limits", h.wallets.LimitRoutes(authMiddleware))
		r.Mount("/notifications", h.notify.Routes(authMiddleware))
		r.Mount("/audit", h.audit.Routes(authMiddleware))
	})

	return r
}
