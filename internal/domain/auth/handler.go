package auth

import (
	"net/http"

	"github.com/sqooli/partner-api/internal/domain/user"
	"github.com/sqooli/partner-api/internal/middleware"
	"github.com/sqooli/partner-api/internal/pkg/response"
	"github.com/sqooli/partner-api/internal/pkg/validator"
)

// Handler handles auth HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates auth handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Login handles POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := h.service.Login(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, result)
}

// Logout handles POST /auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var req LogoutRequest
	if r.ContentLength > 0 {
		if err := response.DecodeJSON(r.Body, &req); err != nil {
			response.BadRequest(w, "Invalid JSON body")
			return
		}
	}

	res, err := h.service.Logout(r.Context(), middleware.GetToken(r.Context()), req.All)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, res)
}

// Me handles GET /auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.Me(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, profile)
}

// ChangePassword handles POST /auth/password
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req user.ChangePasswordRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := h.service.ChangePassword(r.Context(), middleware.GetUserID(r.Context()), &req); err != nil {
		response.FromError(w, err)
		return
	}
	response.NoContent(w)
}
