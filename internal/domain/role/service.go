package role

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sqooli/partner-api/internal/domain/permission"
	"github.com/sqooli/partner-api/internal/pkg/apperror"
	"github.com/sqooli/partner-api/internal/pkg/logger"
)

// PermissionCatalog resolves permission references.
type PermissionCatalog interface {
	ResolveIDs(ctx context.Context, ids []uuid.UUID) ([]*permission.Permission, error)
	GetMany(ctx context.Context, ids []uuid.UUID) ([]*permission.Permission, error)
	GetByKey(ctx context.Context, key string) (*permission.Permission, error)
}

// UserCounter reports how many users carry a role name.
type UserCounter interface {
	CountByRole(ctx context.Context, roleName string) (int, error)
}

// Auditor records mutations.
type Auditor interface {
	Record(ctx context.Context, action, entityType string, entityID uuid.UUID, oldValue, newValue interface{})
}

// Service handles the role registry
type Service struct {
	repo  Repository
	perms PermissionCatalog
	users UserCounter
	audit Auditor
	now   func() time.Time
}

// NewService creates role service
func NewService(repo Repository, perms PermissionCatalog, users UserCounter, audit Auditor) *Service {
	return &Service{repo: repo, perms: perms, users: users, audit: audit, now: time.Now}
}

// Create validates permission references and the name before writing.
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*WithPermissions, error) {
	name := strings.TrimSpace(req.Name)

	perms, err := s.perms.ResolveIDs(ctx, req.PermissionIDs)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrRoleNameTaken
	}

	now := s.now().UTC()
	role := &Role{
		ID:            uuid.New(),
		Name:          name,
		DisplayName:   req.DisplayName,
		Description:   req.Description,
		PermissionIDs: permission.IDs(perms),
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, role); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "role.create", "role", role.ID, nil, role)
	return &WithPermissions{Role: role, Permissions: perms}, nil
}

// Update applies an explicit patch. Permission changes on system roles are
// rejected; other fields stay editable.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateRequest) (*WithPermissions, error) {
	role, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	old := *role

	var perms []*permission.Permission
	if req.PermissionIDs != nil {
		if role.IsSystemRole {
			return nil, ErrSystemRoleProtected
		}
		if perms, err = s.perms.ResolveIDs(ctx, *req.PermissionIDs); err != nil {
			return nil, err
		}
		role.PermissionIDs = permission.IDs(perms)
	}
	if req.DisplayName != nil {
		role.DisplayName = *req.DisplayName
	}
	if req.Description != nil {
		role.Description = *req.Description
	}
	if req.IsActive != nil {
		role.IsActive = *req.IsActive
	}
	role.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, role); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, "role.update", "role", role.ID, old, role)

	return s.expand(ctx, role)
}

// AssignPermissions replaces the permission set of a custom role.
func (s *Service) AssignPermissions(ctx context.Context, id uuid.UUID, ids []uuid.UUID) (*WithPermissions, error) {
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return s.Update(ctx, id, &UpdateRequest{PermissionIDs: &ids})
}

// Delete removes a custom role no user references.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	role, err := s.mustGet(ctx, id)
	if err != nil {
		return err
	}
	if role.IsSystemRole {
		return ErrSystemRoleDelete
	}

	count, err := s.users.CountByRole(ctx, role.Name)
	if err != nil {
		return err
	}
	if count > 0 {
		return &apperror.InUseError{Sentinel: ErrRoleInUse, Count: count}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, "role.delete", "role", role.ID, role, nil)
	return nil
}

// GetByID returns nil when the role does not exist.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*WithPermissions, error) {
	role, err := s.repo.GetByID(ctx, id)
	if err != nil || role == nil {
		return nil, err
	}
	return s.expand(ctx, role)
}

// GetByName returns nil when the role does not exist.
func (s *Service) GetByName(ctx context.Context, name string) (*WithPermissions, error) {
	role, err := s.repo.GetByName(ctx, name)
	if err != nil || role == nil {
		return nil, err
	}
	return s.expand(ctx, role)
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]*WithPermissions, error) {
	roles, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]*WithPermissions, 0, len(roles))
	for _, role := range roles {
		expanded, err := s.expand(ctx, role)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded)
	}
	return out, nil
}

// SeedResult reports the outcome of a seed run.
type SeedResult struct {
	Seeded  bool `json:"seeded"`
	Created int  `json:"created"`
	Total   int  `json:"total"`
}

// Seed installs the system roles. It requires the permission catalog and
// is a no-op reporting the existing count once any role exists.
func (s *Service) Seed(ctx context.Context) (*SeedResult, error) {
	existing, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return &SeedResult{Seeded: false, Total: existing}, nil
	}

	now := s.now().UTC()
	for _, sr := range systemRoles {
		ids := make([]uuid.UUID, 0, len(sr.keys))
		for _, key := range sr.keys {
			p, err := s.perms.GetByKey(ctx, key)
			if err != nil {
				return nil, err
			}
			if p == nil {
				return nil, fmt.Errorf("%w: %s", permission.ErrInvalidPermissionReference, key)
			}
			ids = append(ids, p.ID)
		}
		role := &Role{
			ID:            uuid.New(),
			Name:          sr.name,
			DisplayName:   sr.displayName,
			Description:   sr.description,
			PermissionIDs: ids,
			IsSystemRole:  true,
			IsActive:      true,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.repo.Create(ctx, role); err != nil {
			return nil, fmt.Errorf("seed role %s: %w", sr.name, err)
		}
	}

	logger.FromContext(ctx).Info().Int("created", len(systemRoles)).Msg("system roles seeded")
	return &SeedResult{Seeded: true, Created: len(systemRoles), Total: len(systemRoles)}, nil
}

func (s *Service) mustGet(ctx context.Context, id uuid.UUID) (*Role, error) {
	role, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, ErrRoleNotFound
	}
	return role, nil
}

func (s *Service) expand(ctx context.Context, role *Role) (*WithPermissions, error) {
	perms, err := s.perms.GetMany(ctx, role.PermissionIDs)
	if err != nil {
		return nil, err
	}
	return &WithPermissions{Role: role, Permissions: perms}, nil
}
