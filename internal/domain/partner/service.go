package partner

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sqooli/partner-api/internal/domain/permission"
	"github.com/sqooli/partner-api/internal/domain/role"
	"github.com/sqooli/partner-api/internal/domain/user"
	"github.com/sqooli/partner-api/internal/pkg/batch"
	"github.com/sqooli/partner-api/internal/pkg/logger"
)

// UserProvisioner creates and deactivates partner users.
type UserProvisioner interface {
	Create(ctx context.Context, partnerID uuid.UUID, req *user.CreateRequest) (*user.Created, error)
	DeactivateAllForPartner(ctx context.Context, partnerID uuid.UUID) (batch.Result, error)
}

// PermissionResolver validates permission references.
type PermissionResolver interface {
	ResolveIDs(ctx context.Context, ids []uuid.UUID) ([]*permission.Permission, error)
}

// Auditor records mutations.
type Auditor interface {
	Record(ctx context.Context, action, entityType string, entityID uuid.UUID, oldValue, newValue interface{})
}

// Service handles partner business logic
type Service struct {
	repo  Repository
	users UserProvisioner
	perms PermissionResolver
	audit Auditor
	now   func() time.Time
}

// NewService creates partner service
func NewService(repo Repository, users UserProvisioner, perms PermissionResolver, audit Auditor) *Service {
	return &Service{repo: repo, users: users, perms: perms, audit: audit, now: time.Now}
}

// Create registers a partner and provisions its first partner_admin user.
// If the admin cannot be created the partner row is removed again.
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*CreateResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrPartnerAlreadyExists
	}

	var permIDs []uuid.UUID
	if req.PermissionIDs != nil {
		perms, err := s.perms.ResolveIDs(ctx, *req.PermissionIDs)
		if err != nil {
			return nil, err
		}
		permIDs = permission.IDs(perms)
	}

	now := s.now().UTC()
	p := &Partner{
		ID:            uuid.New(),
		Name:          strings.TrimSpace(req.Name),
		Email:         email,
		Phone:         strings.TrimSpace(req.Phone),
		Username:      strings.TrimSpace(req.Username),
		PermissionIDs: permIDs,
		IsFirstLogin:  true,
		Status:        StatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	adminReq := &user.CreateRequest{Name: req.AdminName, Email: req.AdminEmail, Role: role.PartnerAdmin}
	if adminReq.Name == "" {
		adminReq.Name = p.Name
	}
	if adminReq.Email == "" {
		adminReq.Email = p.Email
	}
	admin, err := s.users.Create(ctx, p.ID, adminReq)
	if err != nil {
		if delErr := s.repo.Delete(ctx, p.ID); delErr != nil {
			logger.FromContext(ctx).Error().Err(delErr).Str("partner_id", p.ID.String()).Msg("failed to roll back partner")
		}
		return nil, err
	}

	s.audit.Record(ctx, "partner.create", "partner", p.ID, nil, p)
	logger.FromContext(ctx).Info().Str("partner_id", p.ID.String()).Msg("partner created")

	return &CreateResponse{Partner: p, Admin: admin.User, Login: admin.Credentials}, nil
}

// EnsureSystem returns the synthetic System partner, creating it once.
func (s *Service) EnsureSystem(ctx context.Context) (*Partner, error) {
	p, err := s.repo.GetByEmail(ctx, SystemEmail)
	if err != nil || p != nil {
		return p, err
	}

	now := s.now().UTC()
	p = &Partner{
		ID:        uuid.New(),
		Name:      "System",
		Email:     SystemEmail,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = s.repo.Create(ctx, p)
	if errors.Is(err, ErrPartnerAlreadyExists) {
		return s.repo.GetByEmail(ctx, SystemEmail)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID returns nil when the partner does not exist.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Partner, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Partner, error) {
	return s.repo.List(ctx)
}

// Update applies an explicit patch.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateRequest) (*Partner, error) {
	p, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	old := *p

	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		p.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Username != nil {
		p.Username = strings.TrimSpace(*req.Username)
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	p.UpdatedAt = s.now().UTC()
	s.audit.Record(ctx, "partner.update", "partner", id, old, p)
	return p, nil
}

// SetStatus activates or deactivates a partner. Deactivation also
// deactivates every active user of the partner and reports each outcome.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status Status) (*StatusResponse, error) {
	p, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.IsSystem() && status != StatusActive {
		return nil, ErrSystemPartner
	}

	if err := s.repo.SetStatus(ctx, id, status); err != nil {
		return nil, err
	}
	old := p.Status
	p.Status = status
	s.audit.Record(ctx, "partner.set_status", "partner", id, map[string]Status{"status": old}, map[string]Status{"status": status})

	resp := &StatusResponse{Partner: p}
	if status == StatusInactive {
		res, err := s.users.DeactivateAllForPartner(ctx, id)
		if err != nil {
			return nil, err
		}
		resp.Users = &res
	}
	return resp, nil
}

// CompleteFirstLogin clears the first-login flag. It is a no-op once cleared.
func (s *Service) CompleteFirstLogin(ctx context.Context, id uuid.UUID) error {
	return s.repo.ClearFirstLogin(ctx, id)
}

func (s *Service) mustGet(ctx context.Context, id uuid.UUID) (*Partner, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPartnerNotFound
	}
	return p, nil
}
