package notification

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sqooli/partner-api/internal/middleware"
	"github.com/sqooli/partner-api/internal/pkg/response"
	"github.com/sqooli/partner-api/internal/pkg/validator"
)

// Handler handles notification HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates notification handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /notifications
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

	n, err := h.service.Create(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, n)
}

// List handles GET /notifications?partner_id=&limit=&offset=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	partnerID, ok := h.partner(w, r)
	if !ok {
		return
	}

	limit := 20
	offset := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 100 {
			limit = v
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if v, err := strconv.Atoi(o); err == nil && v >= 0 {
			offset = v
		}
	}

	list, err := h.service.ListByPartner(r.Context(), partnerID, limit, offset)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, list)
}

// GetUnreadCount handles GET /notifications/unread-count
func (h *Handler) GetUnreadCount(w http.ResponseWriter, r *http.Request) {
	partnerID, ok := h.partner(w, r)
	if !ok {
		return
	}
	count, err := h.service.UnreadCount(r.Context(), partnerID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, UnreadCountResponse{UnreadCount: count})
}

// MarkAsRead handles POST /notifications/{id}/read
func (h *Handler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid notification ID")
		return
	}

	n, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	if n == nil || !middleware.CanAccessPartner(r.Context(), n.PartnerID) {
		response.NotFound(w, ErrNotificationNotFound.Error())
		return
	}

	if err := h.service.MarkRead(r.Context(), id); err != nil {
		response.FromError(w, err)
		return
	}
	response.NoContent(w)
}

// MarkAllAsRead handles POST /notifications/read-all
func (h *Handler) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	partnerID, ok := h.partner(w, r)
	if !ok {
		return
	}
	res, err := h.service.MarkAllRead(r.Context(), partnerID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, res)
}

func (h *Handler) partner(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
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
