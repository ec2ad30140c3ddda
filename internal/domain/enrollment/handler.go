package enrollment

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sqooli/partner-api/internal/middleware"
	"github.com/sqooli/partner-api/internal/pkg/access"
	"github.com/sqooli/partner-api/internal/pkg/response"
	"github.com/sqooli/partner-api/internal/pkg/validator"
)

// Handler handles enrollment HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates enrollment handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /enrollments
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

	target := &Enrollment{CampaignID: req.CampaignID, TransactionID: req.TransactionID}
	if !h.visible(r, target) {
		response.Forbidden(w, "Permission denied")
		return
	}

	e, err := h.service.Create(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, e)
}

// List handles GET /enrollments?campaign_id=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	campaignID, err := uuid.Parse(r.URL.Query().Get("campaign_id"))
	if err != nil {
		response.BadRequest(w, "campaign_id is required")
		return
	}
	if !h.visible(r, &Enrollment{CampaignID: &campaignID}) {
		response.OK(w, []*Enrollment{})
		return
	}

	list, err := h.service.ListByCampaign(r.Context(), campaignID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, list)
}

// GetByTransaction handles GET /enrollments/by-transaction/{id}
// The data is null when the payment has no enrollment yet.
func (h *Handler) GetByTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid transaction ID")
		return
	}
	e, err := h.service.GetByTransactionID(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	if e != nil && !h.visible(r, e) {
		e = nil
	}
	response.OK(w, e)
}

// GetByCode handles GET /enrollments/by-code/{code}
func (h *Handler) GetByCode(w http.ResponseWriter, r *http.Request) {
	e, err := h.service.GetByRedeemCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		response.FromError(w, err)
		return
	}
	if e == nil || !h.visible(r, e) {
		response.NotFound(w, ErrEnrollmentNotFound.Error())
		return
	}
	response.OK(w, e)
}

// UpdateStatus handles PATCH /enrollments/{id}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid enrollment ID")
		return
	}
	var req UpdateStatusRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	e, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	if e == nil || !h.visible(r, e) {
		response.NotFound(w, ErrEnrollmentNotFound.Error())
		return
	}

	updated, err := h.service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, updated)
}

// visible reports whether the caller's partner owns e. Unlinked
// enrollments are visible to all_access only.
func (h *Handler) visible(r *http.Request, e *Enrollment) bool {
	if middleware.HasPermission(r.Context(), access.AllAccess) {
		return true
	}
	partnerID, ok, err := h.service.PartnerOf(r.Context(), e)
	return err == nil && ok && middleware.CanAccessPartner(r.Context(), partnerID)
}
