package transaction

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sqooli/partner-api/internal/middleware"
	"github.com/sqooli/partner-api/internal/pkg/response"
	"github.com/sqooli/partner-api/internal/pkg/validator"
)

// Handler handles transaction HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates transaction handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Record handles POST /transactions
func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	var req RecordRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	t, err := h.service.Record(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, t)
}

// List handles GET /transactions?partner_id=&status=&from=&to=
// Dates are RFC 3339 or YYYY-MM-DD.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	partnerID := middleware.GetPartnerID(r.Context())
	if id, err := uuid.Parse(q.Get("partner_id")); err == nil {
		partnerID = id
	}
	if !middleware.CanAccessPartner(r.Context(), partnerID) {
		response.Forbidden(w, "Permission denied")
		return
	}

	f := Filter{Status: q.Get("status")}
	var ok bool
	if f.From, ok = parseDate(q.Get("from")); !ok {
		response.BadRequest(w, "Invalid from date")
		return
	}
	if f.To, ok = parseDate(q.Get("to")); !ok {
		response.BadRequest(w, "Invalid to date")
		return
	}

	txs, err := h.service.ListByPartner(r.Context(), partnerID, f)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, txs)
}

// Get handles GET /transactions/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	t, ok := h.loadScoped(w, r)
	if !ok {
		return
	}
	response.OK(w, t)
}

// UpdateStatus handles PATCH /transactions/{id}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	t, ok := h.loadScoped(w, r)
	if !ok {
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

	updated, err := h.service.UpdateStatus(r.Context(), t.ID, req.Status)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, updated)
}

// Verify handles POST /transactions/{id}/verify
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	t, ok := h.loadScoped(w, r)
	if !ok {
		return
	}
	updated, err := h.service.MarkVerified(r.Context(), t.ID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, updated)
}

func (h *Handler) loadScoped(w http.ResponseWriter, r *http.Request) (*Transaction, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid transaction ID")
		return nil, false
	}
	t, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return nil, false
	}
	if t == nil || !middleware.CanAccessPartner(r.Context(), t.PartnerID) {
		response.NotFound(w, ErrTransactionNotFound.Error())
		return nil, false
	}
	return t, true
}

func parseDate(s string) (*time.Time, bool) {
	if s == "" {
		return nil, true
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, true
		}
	}
	return nil, false
}
