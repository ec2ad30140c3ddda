package session

import (
	"context"

	"github.com/google/uuid"
)

// Store persists sessions keyed by token hash.
type Store interface {
	Create(ctx context.Context, s *Session) error
	GetByTokenHash(ctx context.Context, hash string) (*Session, error)
	// Delete reports whether a session was removed.
	Delete(ctx context.Context, hash string) (bool, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
