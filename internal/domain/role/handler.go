package role

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sqooli/partner-api/internal/pkg/response"
	"github.com/sqooli/partner-api/internal/pkg/validator"
)

// Handler handles role HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates role handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /roles
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := ListFilter{ActiveOnly: q.Get("active") == "true"}
	if v, err := strconv.ParseBool(q.Get("system")); err == nil {
		f.SystemOnly = &v
	}

	roles, err := h.service.List(r.Context(), f)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, roles)
}

// GetByID handles GET /roles/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	role, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	if role == nil {
		response.NotFound(w, ErrRoleNotFound.Error())
		return
	}
	response.OK(w, role)
}

// GetByName handles GET /roles/by-name/{name}
func (h *Handler) GetByName(w http.ResponseWriter, r *http.Request) {
	role, err := h.service.GetByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		response.FromError(w, err)
		return
	}
	if role == nil {
		response.NotFound(w, ErrRoleNotFound.Error())
		return
	}
	response.OK(w, role)
}

// Create handles POST /roles
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

	role, err := h.service.Create(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, role)
}

// Update handles PATCH /roles/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req UpdateRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	role, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, role)
}

// AssignPermissions handles PUT /roles/{id}/permissions
func (h *Handler) AssignPermissions(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req AssignPermissionsRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	role, err := h.service.AssignPermissions(r.Context(), id, req.PermissionIDs)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, role)
}

// Delete handles DELETE /roles/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, DeleteResult{Message: "Role deleted"})
}

// Seed handles POST /roles/seed
func (h *Handler) Seed(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.Seed(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, res)
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid role ID")
		return uuid.Nil, false
	}
	return id, true
}
