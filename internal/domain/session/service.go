package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sqooli/partner-api/internal/domain/user"
	"github.com/sqooli/partner-api/internal/pkg/credential"
	"github.com/sqooli/partner-api/internal/pkg/logger"
)

// UserLookup resolves session owners.
type UserLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// Service issues and validates opaque session tokens
type Service struct {
	store Store
	users UserLookup
	ttl   time.Duration
	now   func() time.Time
}

// NewService creates session service. A non-positive ttl uses DefaultTTL.
func NewService(store Store, users UserLookup, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{store: store, users: users, ttl: ttl, now: time.Now}
}

// Create issues a new token for userID valid for the configured TTL.
func (s *Service) Create(ctx context.Context, userID uuid.UUID) (*Issued, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}

	token, err := credential.SessionToken()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	sess := &Session{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: credential.Hash(token),
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.store.Create(ctx, sess); err != nil {
		return nil, err
	}
	return &Issued{Token: token, ExpiresAt: sess.ExpiresAt}, nil
}

// Validate returns the session owner, or nil when the token is unknown or
// expired. An expired session is deleted on the spot.
func (s *Service) Validate(ctx context.Context, token string) (*Validated, error) {
	if token == "" {
		return nil, nil
	}
	hash := credential.Hash(token)

	sess, err := s.store.GetByTokenHash(ctx, hash)
	if err != nil || sess == nil {
		return nil, err
	}

	if sess.ExpiredAt(s.now()) {
		if _, err := s.store.Delete(ctx, hash); err != nil {
			return nil, err
		}
		logger.FromContext(ctx).Debug().Str("session_id", sess.ID.String()).Msg("expired session purged")
		return nil, nil
	}

	u, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		_, err := s.store.Delete(ctx, hash)
		return nil, err
	}
	return &Validated{User: u, Session: sess}, nil
}

// Delete removes a session. Unknown tokens yield a soft failure.
func (s *Service) Delete(ctx context.Context, token string) (*DeleteResult, error) {
	ok, err := s.store.Delete(ctx, credential.Hash(token))
	if err != nil {
		return nil, err
	}
	if !ok {
		return &DeleteResult{Success: false, Error: ErrSessionNotFound.Error()}, nil
	}
	return &DeleteResult{Success: true}, nil
}

// DeleteForUser ends every session of userID.
func (s *Service) DeleteForUser(ctx context.Context, userID uuid.UUID) error {
	return s.store.DeleteByUser(ctx, userID)
}
