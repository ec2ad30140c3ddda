package response

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/sqooli/partner-api/internal/pkg/apperror"
)

// DecodeJSON decodes a request body into v and closes it.
func DecodeJSON(body io.ReadCloser, v interface{}) error {
	defer body.Close()
	return json.NewDecoder(body).Decode(v)
}

// Response is the envelope of every API reply
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type ErrorInfo struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// Meta describes one page of a listing
type Meta struct {
	Total   int  `json:"total"`
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	Pages   int  `json:"pages"`
	HasNext bool `json:"has_next"`
	HasPrev bool `json:"has_prev"`
}

// NewMeta derives page counts from total rows. limit must be positive.
func NewMeta(total, page, limit int) Meta {
	pages := (total + limit - 1) / limit
	return Meta{
		Total:   total,
		Page:    page,
		Limit:   limit,
		Pages:   pages,
		HasNext: page < pages,
		HasPrev: page > 1,
	}
}

func write(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Debug().Err(err).Msg("write response")
	}
}

// JSON sends data with status; 2xx marks the envelope successful.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	write(w, status, Response{Success: status >= 200 && status < 300, Data: data})
}

func OK(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, data)
}

func Created(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusCreated, data)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// WithMeta sends one page of a listing
func WithMeta(w http.ResponseWriter, data interface{}, meta Meta) {
	write(w, http.StatusOK, Response{Success: true, Data: data, Meta: &meta})
}

// Error sends an error envelope
func Error(w http.ResponseWriter, status int, code, message string) {
	ErrorWithDetails(w, status, code, message, nil)
}

// ErrorWithDetails sends an error envelope with per-field details
func ErrorWithDetails(w http.ResponseWriter, status int, code, message string, details map[string]string) {
	write(w, status, Response{Error: &ErrorInfo{Code: code, Message: message, Details: details}})
}

func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, "BAD_REQUEST", message)
}

func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

func Forbidden(w http.ResponseWriter, message string) {
	Error(w, http.StatusForbidden, "FORBIDDEN", message)
}

func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, "NOT_FOUND", message)
}

func Conflict(w http.ResponseWriter, message string) {
	Error(w, http.StatusConflict, "CONFLICT", message)
}

// ValidationError reports validator failures keyed by field
func ValidationError(w http.ResponseWriter, details map[string]string) {
	ErrorWithDetails(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", details)
}

func InternalError(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
}

// FromError writes the response matching the kind of a domain error.
// Unclassified errors are logged and reported as INTERNAL_ERROR.
func FromError(w http.ResponseWriter, err error) {
	msg := apperror.Message(err)
	switch apperror.KindOf(err) {
	case apperror.KindConflict:
		Conflict(w, msg)
	case apperror.KindNotFound:
		NotFound(w, msg)
	case apperror.KindInvalidReference:
		Error(w, http.StatusUnprocessableEntity, "INVALID_REFERENCE", msg)
	case apperror.KindPolicyViolation:
		var inUse *apperror.InUseError
		if errors.As(err, &inUse) {
			ErrorWithDetails(w, http.StatusConflict, "POLICY_VIOLATION", msg, map[string]string{
				"user_count": strconv.Itoa(inUse.Count),
			})
			return
		}
		Error(w, http.StatusConflict, "POLICY_VIOLATION", msg)
	case apperror.KindValidation:
		BadRequest(w, msg)
	case apperror.KindUnauthorized:
		Unauthorized(w, msg)
	case apperror.KindForbidden:
		Forbidden(w, msg)
	default:
		log.Error().Err(err).Msg("unhandled error")
		InternalError(w)
	}
}
