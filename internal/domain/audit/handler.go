package audit

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sqooli/partner-api/internal/middleware"
	"github.com/sqooli/partner-api/internal/pkg/access"
	"github.com/sqooli/partner-api/internal/pkg/response"
)

// Handler handles audit HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates audit handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns audit routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.With(middleware.RequirePermission(access.SettingsAdmin)).Get("/", h.List)
	return r
}

// List handles GET /audit
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 || limit > 200 {
		limit = 50
	}

	f := Filter{EntityType: q.Get("entity_type"), Limit: limit, Offset: (page - 1) * limit}
	if id, err := uuid.Parse(q.Get("entity_id")); err == nil {
		f.EntityID = &id
	}

	// Tenants only see their own trail.
	if !middleware.HasPermission(r.Context(), access.AllAccess) {
		partnerID := middleware.GetPartnerID(r.Context())
		f.PartnerID = &partnerID
	} else if id, err := uuid.Parse(q.Get("partner_id")); err == nil {
		f.PartnerID = &id
	}

	entries, total, err := h.service.List(r.Context(), f)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.WithMeta(w, entries, response.NewMeta(total, page, limit))
}
