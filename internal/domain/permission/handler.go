package permission

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sqooli/partner-api/internal/middleware"
	"github.com/sqooli/partner-api/internal/pkg/access"
	"github.com/sqooli/partner-api/internal/pkg/response"
	"github.com/sqooli/partner-api/internal/pkg/validator"
)

// Handler handles permission HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates permission handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns permission routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.With(middleware.RequirePermission(access.SettingsRead)).Get("/", h.List)
	r.With(middleware.RequirePermission(access.SettingsRead)).Get("/{id}", h.GetByID)
	r.With(middleware.RequirePermission(access.SettingsAdmin)).Post("/", h.Create)
	r.With(middleware.RequirePermission(access.AllAccess)).Post("/seed", h.Seed)

	return r
}

// List handles GET /permissions
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	perms, err := h.service.List(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, perms)
}

// GetByID handles GET /permissions/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid permission ID")
		return
	}
	p, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	if p == nil {
		response.NotFound(w, ErrPermissionNotFound.Error())
		return
	}
	response.OK(w, p)
}

// Create handles POST /permissions
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	p, err := h.service.Create(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, p)
}

// Seed handles POST /permissions/seed
func (h *Handler) Seed(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.Seed(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, res)
}
