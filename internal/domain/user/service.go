package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sqooli/partner-api/internal/domain/permission"
	"github.com/sqooli/partner-api/internal/domain/role"
	"github.com/sqooli/partner-api/internal/middleware"
	"github.com/sqooli/partner-api/internal/pkg/access"
	"github.com/sqooli/partner-api/internal/pkg/batch"
	"github.com/sqooli/partner-api/internal/pkg/credential"
	"github.com/sqooli/partner-api/internal/pkg/logger"
	"github.com/sqooli/partner-api/internal/pkg/password"
)

const maxExtensionAttempts = 3

// RoleTemplates looks up roles by name.
type RoleTemplates interface {
	GetByName(ctx context.Context, name string) (*role.WithPermissions, error)
}

// PermissionResolver validates permission references.
type PermissionResolver interface {
	ResolveIDs(ctx context.Context, ids []uuid.UUID) ([]*permission.Permission, error)
	Defaults(ctx context.Context) ([]*permission.Permission, error)
}

// Auditor records mutations.
type Auditor interface {
	Record(ctx context.Context, action, entityType string, entityID uuid.UUID, oldValue, newValue interface{})
}

// Service handles user accounts
type Service struct {
	repo  Repository
	roles RoleTemplates
	perms PermissionResolver
	audit Auditor
	now   func() time.Time
}

// NewService creates user service
func NewService(repo Repository, roles RoleTemplates, perms PermissionResolver, audit Auditor) *Service {
	return &Service{repo: repo, roles: roles, perms: perms, audit: audit, now: time.Now}
}

// Create provisions a user with a generated password and extension.
// Permission ids come from the request, else a copy of the role template,
// else the catalog defaults. Later role edits never reach this user.
func (s *Service) Create(ctx context.Context, partnerID uuid.UUID, req *CreateRequest) (*Created, error) {
	email := normalizeEmail(req.Email)

	tmpl, err := s.roles.GetByName(ctx, req.Role)
	if err != nil {
		return nil, err
	}
	if tmpl == nil {
		return nil, role.ErrRoleNotFound
	}
	if !tmpl.IsActive {
		return nil, ErrRoleInactive
	}

	perms, err := s.initialPermissions(ctx, tmpl, req.PermissionIDs)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserAlreadyExists
	}

	plain, err := credential.Password()
	if err != nil {
		return nil, err
	}
	hash, err := password.Hash(plain)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	u := &User{
		ID:            uuid.New(),
		PartnerID:     partnerID,
		Name:          strings.TrimSpace(req.Name),
		Email:         email,
		PasswordHash:  hash,
		Role:          tmpl.Name,
		PermissionIDs: permission.IDs(perms),
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	for attempt := 0; ; attempt++ {
		if u.Extension, err = credential.Extension(); err != nil {
			return nil, err
		}
		err = s.repo.Create(ctx, u)
		if errors.Is(err, errExtensionTaken) && attempt < maxExtensionAttempts {
			continue
		}
		if err != nil {
			return nil, err
		}
		break
	}

	s.audit.Record(ctx, "user.create", "user", u.ID, nil, u)
	logger.FromContext(ctx).Info().Str("user_id", u.ID.String()).Str("partner_id", partnerID.String()).Str("role", u.Role).Msg("user created")

	return &Created{
		User:        u,
		Credentials: &Credentials{Email: u.Email, Extension: u.Extension, Password: plain},
	}, nil
}

func (s *Service) initialPermissions(ctx context.Context, tmpl *role.WithPermissions, explicit *[]uuid.UUID) ([]*permission.Permission, error) {
	var (
		perms []*permission.Permission
		err   error
	)
	switch {
	case explicit != nil:
		perms, err = s.perms.ResolveIDs(ctx, *explicit)
	case len(tmpl.PermissionIDs) > 0:
		perms, err = s.perms.ResolveIDs(ctx, tmpl.PermissionIDs)
	default:
		perms, err = s.perms.Defaults(ctx)
	}
	if err != nil {
		return nil, err
	}
	if err := checkGrantable(ctx, perms); err != nil {
		return nil, err
	}
	return perms, nil
}

// checkGrantable stops callers without all_access from granting it.
// Calls without a principal come from trusted bootstrap code.
func checkGrantable(ctx context.Context, perms []*permission.Permission) error {
	if middleware.GetPrincipal(ctx) == nil || middleware.HasPermission(ctx, access.AllAccess) {
		return nil
	}
	for _, p := range perms {
		if p.Category == access.CategoryAllAccess {
			return ErrCannotGrantAllAccess
		}
	}
	return nil
}

// GetByID returns nil when the user does not exist.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByEmail returns nil when the user does not exist.
func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.GetByEmail(ctx, normalizeEmail(email))
}

// GetByLogin resolves an email address or an extension.
func (s *Service) GetByLogin(ctx context.Context, identifier string) (*User, error) {
	identifier = strings.TrimSpace(identifier)
	if strings.Contains(identifier, "@") {
		return s.repo.GetByEmail(ctx, normalizeEmail(identifier))
	}
	return s.repo.GetByExtension(ctx, strings.ToLower(identifier))
}

func (s *Service) ListByPartner(ctx context.Context, partnerID uuid.UUID) ([]*User, error) {
	return s.repo.ListByPartner(ctx, partnerID)
}

// UpdateProfile applies an explicit patch. A role change keeps the
// user's permission set as is.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, req *UpdateProfileRequest) (*User, error) {
	u, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	old := *u

	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email != u.Email {
			other, err := s.repo.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, ErrUserAlreadyExists
			}
			u.Email = email
		}
	}
	if req.Role != nil && *req.Role != u.Role {
		tmpl, err := s.roles.GetByName(ctx, *req.Role)
		if err != nil {
			return nil, err
		}
		if tmpl == nil {
			return nil, role.ErrRoleNotFound
		}
		u.Role = tmpl.Name
	}
	if req.Name != nil {
		u.Name = strings.TrimSpace(*req.Name)
	}

	if err := s.repo.UpdateProfile(ctx, u); err != nil {
		return nil, err
	}
	u.UpdatedAt = s.now().UTC()
	s.audit.Record(ctx, "user.update", "user", u.ID, old, u)
	return u, nil
}

// UpdatePermissions replaces the user's explicit permission set.
func (s *Service) UpdatePermissions(ctx context.Context, id uuid.UUID, ids []uuid.UUID) (*User, error) {
	u, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	perms, err := s.perms.ResolveIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if err := checkGrantable(ctx, perms); err != nil {
		return nil, err
	}

	old := u.PermissionIDs
	u.PermissionIDs = permission.IDs(perms)
	if err := s.repo.UpdatePermissions(ctx, id, u.PermissionIDs); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, "user.permissions", "user", id, old, u.PermissionIDs)
	return u, nil
}

// SetActive toggles whether the user may log in.
func (s *Service) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return err
	}
	s.audit.Record(ctx, "user.set_active", "user", id, nil, map[string]bool{"is_active": active})
	return nil
}

// ResetPassword generates a new password, returned exactly once.
func (s *Service) ResetPassword(ctx context.Context, id uuid.UUID) (*Credentials, error) {
	u, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	plain, err := credential.Password()
	if err != nil {
		return nil, err
	}
	hash, err := password.Hash(plain)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdatePassword(ctx, id, hash, false); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, "user.reset_password", "user", id, nil, nil)
	return &Credentials{Email: u.Email, Extension: u.Extension, Password: plain}, nil
}

// ChangePassword replaces the password after verifying the current one
// and marks the account activated.
func (s *Service) ChangePassword(ctx context.Context, id uuid.UUID, req *ChangePasswordRequest) (*User, error) {
	u, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	if !password.Verify(req.CurrentPassword, u.PasswordHash) {
		return nil, ErrInvalidPassword
	}
	hash, err := password.Hash(req.NewPassword)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdatePassword(ctx, id, hash, true); err != nil {
		return nil, err
	}
	u.PasswordHash = hash
	u.IsActivated = true
	return u, nil
}

// RecordLogin stamps the last successful login.
func (s *Service) RecordLogin(ctx context.Context, id uuid.UUID) error {
	return s.repo.UpdateLastLogin(ctx, id, s.now().UTC())
}

// DeactivateAllForPartner deactivates every active user of a partner
// concurrently. Failures are reported per user; successes stay applied.
func (s *Service) DeactivateAllForPartner(ctx context.Context, partnerID uuid.UUID) (batch.Result, error) {
	ids, err := s.repo.ListActiveIDsByPartner(ctx, partnerID)
	if err != nil {
		return batch.Result{}, err
	}

	res := batch.Run(ctx, ids, batch.DefaultConcurrency, func(ctx context.Context, id uuid.UUID) error {
		return s.repo.SetActive(ctx, id, false)
	})
	if res.Failed > 0 {
		logger.FromContext(ctx).Warn().
			Str("partner_id", partnerID.String()).
			Int("failed", res.Failed).
			Int("succeeded", res.Succeeded).
			Msg("partial failure deactivating partner users")
	}
	return res, nil
}

// CountByRole reports how many users carry the role name.
func (s *Service) CountByRole(ctx context.Context, roleName string) (int, error) {
	return s.repo.CountByRole(ctx, roleName)
}

func (s *Service) mustGet(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
