package auth

import (
	"time"

	"github.com/sqooli/partner-api/internal/domain/partner"
	"github.com/sqooli/partner-api/internal/domain/user"
)

// LoginRequest accepts an email address or a user extension.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required,min=3,max=255"`
	Password   string `json:"password" validate:"required"`
}

// LogoutRequest for POST /auth/logout
type LogoutRequest struct {
	All bool `json:"all"`
}

// LoginResponse carries the session token and the caller's resolved access.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Profile
}

// Profile is the authenticated user with permission keys resolved.
type Profile struct {
	User               *user.User       `json:"user"`
	Partner            *partner.Partner `json:"partner,omitempty"`
	Permissions        []string         `json:"permissions"`
	MustChangePassword bool             `json:"must_change_password"`
}
