package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/sqooli/partner-api/internal/domain/partner"
	"github.com/sqooli/partner-api/internal/domain/session"
	"github.com/sqooli/partner-api/internal/domain/user"
	"github.com/sqooli/partner-api/internal/middleware"
	"github.com/sqooli/partner-api/internal/pkg/logger"
	"github.com/sqooli/partner-api/internal/pkg/password"
)

// Users is the slice of the user service auth relies on.
type Users interface {
	GetByLogin(ctx context.Context, identifier string) (*user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	RecordLogin(ctx context.Context, id uuid.UUID) error
	ChangePassword(ctx context.Context, id uuid.UUID, req *user.ChangePasswordRequest) (*user.User, error)
}

// Sessions issues and resolves session tokens.
type Sessions interface {
	Create(ctx context.Context, userID uuid.UUID) (*session.Issued, error)
	Validate(ctx context.Context, token string) (*session.Validated, error)
	Delete(ctx context.Context, token string) (*session.DeleteResult, error)
	DeleteForUser(ctx context.Context, userID uuid.UUID) error
}

// Permissions resolves permission ids to keys.
type Permissions interface {
	KeysFor(ctx context.Context, ids []uuid.UUID) ([]string, error)
}

// Partners exposes partner state needed at login.
type Partners interface {
	GetByID(ctx context.Context, id uuid.UUID) (*partner.Partner, error)
	CompleteFirstLogin(ctx context.Context, id uuid.UUID) error
}

// Service handles authentication business logic
type Service struct {
	users    Users
	sessions Sessions
	perms    Permissions
	partners Partners
}

// NewService creates auth service
func NewService(users Users, sessions Sessions, perms Permissions, partners Partners) *Service {
	return &Service{users: users, sessions: sessions, perms: perms, partners: partners}
}

// Login verifies credentials and opens a session.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	u, err := s.users.GetByLogin(ctx, req.Identifier)
	if err != nil {
		return nil, err
	}
	if u == nil || !password.Verify(req.Password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrUserInactive
	}

	p, err := s.partners.GetByID(ctx, u.PartnerID)
	if err != nil {
		return nil, err
	}
	if p != nil && !p.IsActive() {
		return nil, ErrPartnerInactive
	}

	issued, err := s.sessions.Create(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	if err := s.users.RecordLogin(ctx, u.ID); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("user_id", u.ID.String()).Msg("failed to record login")
	}

	profile, err := s.profile(ctx, u, p)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{Token: issued.Token, ExpiresAt: issued.ExpiresAt, Profile: *profile}, nil
}

// Logout ends the given session, or every session of its owner when all is set.
func (s *Service) Logout(ctx context.Context, token string, all bool) (*session.DeleteResult, error) {
	if all {
		v, err := s.sessions.Validate(ctx, token)
		if err != nil {
			return nil, err
		}
		if v != nil {
			if err := s.sessions.DeleteForUser(ctx, v.User.ID); err != nil {
				return nil, err
			}
			return &session.DeleteResult{Success: true}, nil
		}
	}
	return s.sessions.Delete(ctx, token)
}

// Me returns the caller's profile.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}
	p, err := s.partners.GetByID(ctx, u.PartnerID)
	if err != nil {
		return nil, err
	}
	return s.profile(ctx, u, p)
}

// ChangePassword replaces the caller's password and completes the
// partner's first-login flow.
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, req *user.ChangePasswordRequest) error {
	u, err := s.users.ChangePassword(ctx, userID, req)
	if err != nil {
		return err
	}
	return s.partners.CompleteFirstLogin(ctx, u.PartnerID)
}

// Authenticate resolves a session token into a principal for middleware.
// Deactivated users are treated as unauthenticated.
func (s *Service) Authenticate(ctx context.Context, token string) (*middleware.Principal, error) {
	v, err := s.sessions.Validate(ctx, token)
	if err != nil || v == nil {
		return nil, err
	}
	if !v.User.IsActive {
		return nil, nil
	}

	keys, err := s.perms.KeysFor(ctx, v.User.PermissionIDs)
	if err != nil {
		return nil, err
	}
	return &middleware.Principal{
		UserID:      v.User.ID,
		PartnerID:   v.User.PartnerID,
		Role:        v.User.Role,
		Permissions: keys,
	}, nil
}

func (s *Service) profile(ctx context.Context, u *user.User, p *partner.Partner) (*Profile, error) {
	keys, err := s.perms.KeysFor(ctx, u.PermissionIDs)
	if err != nil {
		return nil, err
	}
	if keys == nil {
		keys = []string{}
	}
	return &Profile{User: u, Partner: p, Permissions: keys, MustChangePassword: !u.IsActivated}, nil
}
