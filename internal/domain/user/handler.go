package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sqooli/partner-api/internal/middleware"
	"github.com/sqooli/partner-api/internal/pkg/access"
	"github.com/sqooli/partner-api/internal/pkg/response"
	"github.com/sqooli/partner-api/internal/pkg/validator"
)

// Handler handles user HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates user handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /users
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

	partnerID := req.PartnerID
	if partnerID == uuid.Nil || !middleware.HasPermission(r.Context(), access.AllAccess) {
		partnerID = middleware.GetPartnerID(r.Context())
	}

	created, err := h.service.Create(r.Context(), partnerID, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, created)
}

// List handles GET /users
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	partnerID := middleware.GetPartnerID(r.Context())
	if id, err := uuid.Parse(r.URL.Query().Get("partner_id")); err == nil {
		partnerID = id
	}
	if !middleware.CanAccessPartner(r.Context(), partnerID) {
		response.Forbidden(w, "Permission denied")
		return
	}

	users, err := h.service.ListByPartner(r.Context(), partnerID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, users)
}

// GetByID handles GET /users/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	u, ok := h.loadScoped(w, r)
	if !ok {
		return
	}
	response.OK(w, u)
}

// UpdateProfile handles PATCH /users/{id}
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	u, ok := h.loadScoped(w, r)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	updated, err := h.service.UpdateProfile(r.Context(), u.ID, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, updated)
}

// UpdatePermissions handles PUT /users/{id}/permissions
func (h *Handler) UpdatePermissions(w http.ResponseWriter, r *http.Request) {
	u, ok := h.loadScoped(w, r)
	if !ok {
		return
	}
	var req UpdatePermissionsRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	updated, err := h.service.UpdatePermissions(r.Context(), u.ID, req.PermissionIDs)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, updated)
}

// SetActive handles PATCH /users/{id}/active
func (h *Handler) SetActive(w http.ResponseWriter, r *http.Request) {
	u, ok := h.loadScoped(w, r)
	if !ok {
		return
	}
	var req SetActiveRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if err := h.service.SetActive(r.Context(), u.ID, req.IsActive); err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, map[string]interface{}{"id": u.ID, "is_active": req.IsActive})
}

// ResetPassword handles POST /users/{id}/reset-password
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	u, ok := h.loadScoped(w, r)
	if !ok {
		return
	}
	creds, err := h.service.ResetPassword(r.Context(), u.ID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, creds)
}

// loadScoped resolves {id} and enforces tenant scoping.
func (h *Handler) loadScoped(w http.ResponseWriter, r *http.Request) (*User, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return nil, false
	}
	u, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return nil, false
	}
	if u == nil || !middleware.CanAccessPartner(r.Context(), u.PartnerID) {
		response.NotFound(w, ErrUserNotFound.Error())
		return nil, false
	}
	return u, true
}
