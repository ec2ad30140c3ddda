package wallet

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sqooli/partner-api/internal/middleware"
	"github.com/sqooli/partner-api/internal/pkg/access"
	"github.com/sqooli/partner-api/internal/pkg/response"
	"github.com/sqooli/partner-api/internal/pkg/validator"
)

// Handler handles wallet and withdrawal limit HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates wallet handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Create handles POST /wallets
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if !decode(w, r, &req) {
		return
	}

	partnerID := req.PartnerID
	if partnerID == uuid.Nil || !middleware.HasPermission(r.Context(), access.AllAccess) {
		partnerID = middleware.GetPartnerID(r.Context())
	}

	wallet, err := h.svc.CreateWallet(r.Context(), partnerID, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, wallet)
}

// Get handles GET /wallets/{partner}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	partnerID, ok := h.partnerParam(w, r)
	if !ok {
		return
	}
	wallet, err := h.svc.GetByPartner(r.Context(), partnerID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	if wallet == nil {
		response.NotFound(w, ErrWalletNotFound.Error())
		return
	}
	response.OK(w, wallet)
}

// Credit handles POST /wallets/{partner}/credit
func (h *Handler) Credit(w http.ResponseWriter, r *http.Request) {
	partnerID, ok := h.partnerParam(w, r)
	if !ok {
		return
	}
	var req CreditRequest
	if !decode(w, r, &req) {
		return
	}

	wallet, err := h.svc.UpdateWalletBalance(r.Context(), partnerID, req.Amount)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, wallet)
}

// VerifyPin handles POST /wallets/{partner}/pin/verify
func (h *Handler) VerifyPin(w http.ResponseWriter, r *http.Request) {
	partnerID, ok := h.partnerParam(w, r)
	if !ok {
		return
	}
	var req VerifyPinRequest
	if !decode(w, r, &req) {
		return
	}

	res, err := h.svc.VerifyPin(r.Context(), partnerID, req.Pin)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, res)
}

// ChangePin handles PUT /wallets/{partner}/pin
func (h *Handler) ChangePin(w http.ResponseWriter, r *http.Request) {
	partnerID, ok := h.partnerParam(w, r)
	if !ok {
		return
	}
	var req ChangePinRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.svc.ChangePin(r.Context(), partnerID, &req); err != nil {
		response.FromError(w, err)
		return
	}
	response.NoContent(w)
}

// UpdatePayout handles PUT /wallets/{partner}/payout
func (h *Handler) UpdatePayout(w http.ResponseWriter, r *http.Request) {
	partnerID, ok := h.partnerParam(w, r)
	if !ok {
		return
	}
	var req PayoutDetails
	if !decode(w, r, &req) {
		return
	}

	wallet, err := h.svc.UpdatePayoutDetails(r.Context(), partnerID, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, wallet)
}

// CreateLimit handles POST /withdrawal-limits
func (h *Handler) CreateLimit(w http.ResponseWriter, r *http.Request) {
	var req LimitRequest
	if !decode(w, r, &req) {
		return
	}
	l, err := h.svc.CreateLimit(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, l)
}

// UpdateLimit handles PATCH /withdrawal-limits/{id}
func (h *Handler) UpdateLimit(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid limit ID")
		return
	}
	var req UpdateLimitRequest
	if !decode(w, r, &req) {
		return
	}
	l, err := h.svc.UpdateLimit(r.Context(), id, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, l)
}

// ListLimits handles GET /withdrawal-limits
// Partners only see their own rows and the platform defaults.
func (h *Handler) ListLimits(w http.ResponseWriter, r *http.Request) {
	limits, err := h.svc.ListLimits(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	visible := make([]*Limit, 0, len(limits))
	for _, l := range limits {
		if l.PartnerID == nil || middleware.CanAccessPartner(r.Context(), *l.PartnerID) {
			visible = append(visible, l)
		}
	}
	response.OK(w, visible)
}

// ActiveLimit handles GET /withdrawal-limits/active?partner_id=
func (h *Handler) ActiveLimit(w http.ResponseWriter, r *http.Request) {
	partnerID, ok := h.partnerQuery(w, r, r.URL.Query().Get("partner_id"))
	if !ok {
		return
	}
	l, err := h.svc.GetActiveLimit(r.Context(), partnerID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, l)
}

// CheckAmount handles POST /withdrawal-limits/check
func (h *Handler) CheckAmount(w http.ResponseWriter, r *http.Request) {
	var req CheckAmountRequest
	if !decode(w, r, &req) {
		return
	}
	partnerID := req.PartnerID
	if partnerID == uuid.Nil {
		partnerID = middleware.GetPartnerID(r.Context())
	}
	if !middleware.CanAccessPartner(r.Context(), partnerID) {
		response.Forbidden(w, "Permission denied")
		return
	}

	res, err := h.svc.CheckWithdrawalAmount(r.Context(), partnerID, req.Amount)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, res)
}

// partnerParam resolves {partner}, where "me" is the caller's partner.
// Foreign wallets look absent.
func (h *Handler) partnerParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	ref := chi.URLParam(r, "partner")
	if ref == "me" {
		return middleware.GetPartnerID(r.Context()), true
	}
	id, err := uuid.Parse(ref)
	if err != nil {
		response.BadRequest(w, "Invalid partner ID")
		return uuid.Nil, false
	}
	if !middleware.CanAccessPartner(r.Context(), id) {
		response.NotFound(w, ErrWalletNotFound.Error())
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) partnerQuery(w http.ResponseWriter, r *http.Request, raw string) (uuid.UUID, bool) {
	if raw == "" {
		return middleware.GetPartnerID(r.Context()), true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		response.BadRequest(w, "Invalid partner ID")
		return uuid.Nil, false
	}
	if !middleware.CanAccessPartner(r.Context(), id) {
		response.Forbidden(w, "Permission denied")
		return uuid.Nil, false
	}
	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := response.DecodeJSON(r.Body, v); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return false
	}
	if errs := validator.Validate(v); errs != nil {
		response.ValidationError(w, errs)
		return false
	}
	return true
}
