package program

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sqooli/partner-api/internal/pkg/response"
	"github.com/sqooli/partner-api/internal/pkg/validator"
)

// Handler handles program HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates program handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /programs
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

// List handles GET /programs?active=true
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	programs, err := h.service.List(r.Context(), r.URL.Query().Get("active") == "true")
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, programs)
}

// Get handles GET /programs/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid program ID")
		return
	}
	p, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	if p == nil {
		response.NotFound(w, ErrProgramNotFound.Error())
		return
	}
	response.OK(w, p)
}

// Update handles PATCH /programs/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid program ID")
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
