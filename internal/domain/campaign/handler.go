package campaign

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sqooli/partner-api/internal/middleware"
	"github.com/sqooli/partner-api/internal/pkg/access"
	"github.com/sqooli/partner-api/internal/pkg/response"
	"github.com/sqooli/partner-api/internal/pkg/validator"
)

// Handler handles campaign and promo code HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates campaign handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /campaigns
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

	c, err := h.service.Create(r.Context(), partnerID, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, c)
}

// List handles GET /campaigns?status=&partner_id=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	partnerID := middleware.GetPartnerID(r.Context())
	if id, err := uuid.Parse(r.URL.Query().Get("partner_id")); err == nil {
		partnerID = id
	}
	if !middleware.CanAccessPartner(r.Context(), partnerID) {
		response.Forbidden(w, "Permission denied")
		return
	}

	status := Status(r.URL.Query().Get("status"))
	if status != "" {
		if errs := validator.Validate(&SetStatusRequest{Status: status}); errs != nil {
			response.BadRequest(w, "Invalid status filter")
			return
		}
	}

	campaigns, err := h.service.ListByPartner(r.Context(), partnerID, status)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, campaigns)
}

// Get handles GET /campaigns/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	c, ok := h.loadScoped(w, r)
	if !ok {
		return
	}
	response.OK(w, c)
}

// Update handles PATCH /campaigns/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	c, ok := h.loadScoped(w, r)
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

	updated, err := h.service.Update(r.Context(), c.ID, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, updated)
}

// SetStatus handles PATCH /campaigns/{id}/status
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	c, ok := h.loadScoped(w, r)
	if !ok {
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

	updated, err := h.service.SetStatus(r.Context(), c.ID, req.Status)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, updated)
}

// ListPromoCodes handles GET /campaigns/{id}/promo-codes
func (h *Handler) ListPromoCodes(w http.ResponseWriter, r *http.Request) {
	c, ok := h.loadScoped(w, r)
	if !ok {
		return
	}
	codes, err := h.service.ListPromoCodes(r.Context(), c.ID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, codes)
}

// CreatePromoCode handles POST /campaigns/{id}/promo-codes
func (h *Handler) CreatePromoCode(w http.ResponseWriter, r *http.Request) {
	c, ok := h.loadScoped(w, r)
	if !ok {
		return
	}
	var req CreatePromoCodeRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	p, err := h.service.CreatePromoCode(r.Context(), c.ID, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, p)
}

// GetPromoCode handles GET /promo-codes/{ref} where ref is the code.
func (h *Handler) GetPromoCode(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetPromoCode(r.Context(), chi.URLParam(r, "ref"))
	if err != nil {
		response.FromError(w, err)
		return
	}
	if p == nil || !h.ownsCampaign(r, p.CampaignID) {
		response.NotFound(w, ErrPromoCodeNotFound.Error())
		return
	}
	response.OK(w, p)
}

// UpdatePromoCode handles PATCH /promo-codes/{ref} where ref is the id.
func (h *Handler) UpdatePromoCode(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadScopedPromo(w, r)
	if !ok {
		return
	}
	var req UpdatePromoCodeRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	updated, err := h.service.UpdatePromoCode(r.Context(), p.ID, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, updated)
}

// TogglePromoCode handles POST /promo-codes/{ref}/toggle
func (h *Handler) TogglePromoCode(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadScopedPromo(w, r)
	if !ok {
		return
	}
	updated, err := h.service.TogglePromoCode(r.Context(), p.ID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, updated)
}

func (h *Handler) loadScoped(w http.ResponseWriter, r *http.Request) (*Campaign, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid campaign ID")
		return nil, false
	}
	c, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return nil, false
	}
	if c == nil || !middleware.CanAccessPartner(r.Context(), c.PartnerID) {
		response.NotFound(w, ErrCampaignNotFound.Error())
		return nil, false
	}
	return c, true
}

func (h *Handler) loadScopedPromo(w http.ResponseWriter, r *http.Request) (*PromoCode, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "ref"))
	if err != nil {
		response.BadRequest(w, "Invalid promo code ID")
		return nil, false
	}
	p, err := h.service.GetPromoCodeByID(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return nil, false
	}
	if p == nil || !h.ownsCampaign(r, p.CampaignID) {
		response.NotFound(w, ErrPromoCodeNotFound.Error())
		return nil, false
	}
	return p, true
}

func (h *Handler) ownsCampaign(r *http.Request, campaignID uuid.UUID) bool {
	c, err := h.service.GetByID(r.Context(), campaignID)
	return err == nil && c != nil && middleware.CanAccessPartner(r.Context(), c.PartnerID)
}
