package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/sqooli/partner-api/internal/domain/user"
)

// DefaultTTL is the fixed lifetime of a session from creation.
const DefaultTTL = 2 * time.Hour

// Session is a stored login. Only the token's SHA-256 hash is persisted.
type Session struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	TokenHash string    `db:"token_hash" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
}

// ExpiredAt reports whether the session is past its expiry at t.
func (s *Session) ExpiredAt(t time.Time) bool {
	return t.After(s.ExpiresAt)
}

// Issued is returned once on creation; the raw token is never stored.
type Issued struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Validated is the owner of a live session.
type Validated struct {
	User    *user.User `json:"user"`
	Session *Session   `json:"session"`
}

// DeleteResult is a soft result: unknown tokens are not errors.
type DeleteResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
