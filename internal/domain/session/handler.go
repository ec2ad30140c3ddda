package session

import (
	"net/http"

	"github.com/sqooli/partner-api/internal/pkg/response"
	"github.com/sqooli/partner-api/internal/pkg/validator"
)

// Handler handles session HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates session handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /sessions
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

	issued, err := h.service.Create(r.Context(), req.UserID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, issued)
}

// Validate handles POST /sessions/validate. Unknown or expired tokens
// return null data.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	v, err := h.service.Validate(r.Context(), req.Token)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, v)
}

// Delete handles DELETE /sessions
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	res, err := h.service.Delete(r.Context(), req.Token)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, res)
}
