package permission

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sqooli/partner-api/internal/pkg/access"
	"github.com/sqooli/partner-api/internal/pkg/logger"
)

// Service handles the permission catalog
type Service struct {
	repo Repository
}

// NewService creates permission service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// SeedResult reports the outcome of a seed run.
type SeedResult struct {
	Seeded  bool `json:"seeded"`
	Created int  `json:"created"`
	Total   int  `json:"total"`
}

// Seed installs the built-in catalog. When rows already exist it does
// nothing and reports the existing count.
func (s *Service) Seed(ctx context.Context) (*SeedResult, error) {
	existing, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return &SeedResult{Seeded: false, Total: existing}, nil
	}

	created, err := s.repo.InsertMany(ctx, Catalog())
	if err != nil {
		return nil, fmt.Errorf("seed permissions: %w", err)
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info().Int("created", created).Msg("permission catalog seeded")
	return &SeedResult{Seeded: true, Created: created, Total: total}, nil
}

// Create adds a permission outside the built-in catalog.
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*Permission, error) {
	key := access.Key(access.Category(req.Category), access.Level(req.Level))
	if _, _, err := access.Parse(key); err != nil {
		return nil, ErrInvalidPermissionKey
	}
	p := &Permission{
		ID:          uuid.New(),
		Key:         key,
		Category:    access.Category(req.Category),
		Level:       access.Level(req.Level),
		Description: req.Description,
		IsDefault:   req.IsDefault,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]*Permission, error) {
	return s.repo.List(ctx)
}

// GetByID returns nil when the permission does not exist.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Permission, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByKey(ctx context.Context, key string) (*Permission, error) {
	return s.repo.GetByKey(ctx, key)
}

// ResolveIDs loads every referenced permission. Duplicate ids collapse;
// any id that does not resolve fails the whole call.
func (s *Service) ResolveIDs(ctx context.Context, ids []uuid.UUID) ([]*Permission, error) {
	unique := dedupe(ids)
	if len(unique) == 0 {
		return nil, nil
	}

	perms, err := s.repo.GetByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(perms) != len(unique) {
		found := make(map[uuid.UUID]bool, len(perms))
		for _, p := range perms {
			found[p.ID] = true
		}
		for _, id := range unique {
			if !found[id] {
				return nil, fmt.Errorf("%w: %s", ErrInvalidPermissionReference, id)
			}
		}
	}
	return perms, nil
}

// Defaults returns the permissions granted to new users with no explicit set.
func (s *Service) Defaults(ctx context.Context) ([]*Permission, error) {
	return s.repo.ListDefaults(ctx)
}

// GetMany returns the permissions that exist among ids.
func (s *Service) GetMany(ctx context.Context, ids []uuid.UUID) ([]*Permission, error) {
	return s.repo.GetByIDs(ctx, dedupe(ids))
}

// KeysFor returns the keys of the given ids, ignoring ids that no longer resolve.
func (s *Service) KeysFor(ctx context.Context, ids []uuid.UUID) ([]string, error) {
	perms, err := s.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	return Keys(perms), nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
