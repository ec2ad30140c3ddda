package partner

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sqooli/partner-api/internal/middleware"
	"github.com/sqooli/partner-api/internal/pkg/response"
	"github.com/sqooli/partner-api/internal/pkg/validator"
)

// Handler handles partner HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates partner handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /partners
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

	created, err := h.service.Create(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, created)
}

// List handles GET /partners
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	partners, err := h.service.List(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, partners)
}

// Get handles GET /partners/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := scopedID(w, r)
	if !ok {
		return
	}
	p, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	if p == nil {
		response.NotFound(w, ErrPartnerNotFound.Error())
		return
	}
	response.OK(w, p)
}

// Update handles PATCH /partners/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := scopedID(w, r)
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

	p, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, p)
}

// SetStatus handles PATCH /partners/{id}/status
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid partner ID")
		return
	}
	var req SetStatusRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	resp, err := h.service.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, resp)
}

// scopedID parses {id}; foreign partners look like missing ones.
func scopedID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid partner ID")
		return uuid.Nil, false
	}
	if !middleware.CanAccessPartner(r.Context(), id) {
		response.NotFound(w, ErrPartnerNotFound.Error())
		return uuid.Nil, false
	}
	return id, true
}
