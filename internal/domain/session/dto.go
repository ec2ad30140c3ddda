package session

import "github.com/google/uuid"

// CreateRequest for POST /sessions
type CreateRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
}

// TokenRequest for POST /sessions/validate and DELETE /sessions
type TokenRequest struct {
	Token string `json:"token" validate:"required"`
}
