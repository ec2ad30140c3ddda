package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

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
)

type staticAuth map[string]*middleware.Principal

func (a staticAuth) Authenticate(_ context.Context, token string) (*middleware.Principal, error) {
	return a[token], nil
}

func testRouter() http.Handler {
	h := routes{
		auth:         auth.NewHandler(nil),
		sessions:     session.NewHandler(nil),
		permissions:  permission.NewHandler(nil),
		roles:        role.NewHandler(nil),
		users:        user.NewHandler(nil),
		partners:     partner.NewHandler(nil),
		programs:     program.NewHandler(nil),
		campaigns:    campaign.NewHandler(nil),
		transactions: transaction.NewHandler(nil),
		enrollments:  enrollment.NewHandler(nil),
		revenue:      revenue.NewHandler(nil),
		wallets:      wallet.NewHandler(nil),
		notify:       notification.NewHandler(nil),
		audit:        audit.NewHandler(nil),
	}
	auth := staticAuth{
		"viewer": {UserID: uuid.New(), PartnerID: uuid.New(), Permissions: []string{"dashboard.read"}},
	}
	return newRouter(&config.Config{AllowedOrigins: []string{"http://localhost:5173"}}, h, middleware.SessionAuth(auth))
}

func TestRouterHealth(t *testing.T) {
	rr := httptest.NewRecorder()
	testRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestRouterGuards(t *testing.T) {
	router := testRouter()
	txID := uuid.NewString()

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"wallet without session", http.MethodGet, "/api/v1/wallets/me", "", http.StatusUnauthorized},
		{"unknown session", http.MethodGet, "/api/v1/revenue/timeline", "stale", http.StatusUnauthorized},
		{"settle needs all access", http.MethodPost, "/api/v1/transactions/" + txID + "/settle", "viewer", http.StatusForbidden},
		{"limits admin only", http.MethodPost, "/api/v1/withdrawal-limits/", "viewer", http.StatusForbidden},
		{"top partners admin only", http.MethodGet, "/api/v1/revenue/top", "viewer", http.StatusForbidden},
		{"unknown route", http.MethodGet, "/api/v1/castings", "viewer", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			if rr.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rr.Code)
			}
		})
	}
}
