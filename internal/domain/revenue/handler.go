package revenue

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sqooli/partner-api/internal/middleware"
	"github.com/sqooli/partner-api/internal/pkg/response"
	"github.com/sqooli/partner-api/internal/pkg/validator"
)

// Handler handles revenue HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates revenue handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Settle handles POST /transactions/{id}/settle
func (h *Handler) Settle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid transaction ID")
		return
	}

	res, err := h.service.Settle(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	if res.AlreadySettled {
		response.OK(w, res)
		return
	}
	response.Created(w, res)
}

// LogRevenue handles POST /revenue/logs
func (h *Handler) LogRevenue(w http.ResponseWriter, r *http.Request) {
	var req LogRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	l, err := h.service.LogRevenue(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, l)
}

// ListLogs handles GET /revenue/logs?partner_id=&limit=&offset=
func (h *Handler) ListLogs(w http.ResponseWriter, r *http.Request) {
	partnerID, ok := partnerQuery(w, r)
	if !ok {
		return
	}
	limit := intQuery(r, "limit", 50, 200)
	offset := intQuery(r, "offset", 0, -1)

	logs, err := h.service.ListByPartner(r.Context(), partnerID, limit, offset)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, logs)
}

// Timeline handles GET /revenue/timeline?partner_id=&days=
func (h *Handler) Timeline(w http.ResponseWriter, r *http.Request) {
	partnerID, ok := partnerQuery(w, r)
	if !ok {
		return
	}
	days := DefaultTimelineDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "Invalid days")
			return
		}
		days = v
	}

	timeline, err := h.service.GetEarningsTimeline(r.Context(), partnerID, days)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, timeline)
}

// Summary handles GET /revenue/summary?partner_id=
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	partnerID, ok := partnerQuery(w, r)
	if !ok {
		return
	}
	summary, err := h.service.GetPartnerEarningsSummary(r.Context(), partnerID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, summary)
}

// Top handles GET /revenue/top?limit=
func (h *Handler) Top(w http.ResponseWriter, r *http.Request) {
	top, err := h.service.GetTopEarningPartners(r.Context(), intQuery(r, "limit", DefaultTopLimit, 100))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, top)
}

// Preview handles GET /revenue/preview?partner_id=&amount=&code=
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	partnerID, ok := partnerQuery(w, r)
	if !ok {
		return
	}
	amount, err := strconv.ParseFloat(r.URL.Query().Get("amount"), 64)
	if err != nil || amount < 0 {
		response.BadRequest(w, "Invalid amount")
		return
	}

	split, err := h.service.PreviewSplit(r.Context(), partnerID, amount, r.URL.Query().Get("code"))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, split)
}

func partnerQuery(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	partnerID := middleware.GetPartnerID(r.Context())
	if raw := r.URL.Query().Get("partner_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "Invalid partner ID")
			return uuid.Nil, false
		}
		partnerID = id
	}
	if !middleware.CanAccessPartner(r.Context(), partnerID) {
		response.Forbidden(w, "Permission denied")
		return uuid.Nil, false
	}
	return partnerID, true
}

// intQuery parses a non-negative query int; max < 0 means unbounded.
func intQuery(r *http.Request, key string, def, max int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || v < 0 || (max >= 0 && v > max) {
		return def
	}
	return v
}
