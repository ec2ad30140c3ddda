package program

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service handles program catalog logic
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates program service
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) Create(ctx context.Context, req *CreateRequest) (*Program, error) {
	now := s.now().UTC()
	p := &Program{
		ID:             uuid.New(),
		Name:           strings.TrimSpace(req.Name),
		Description:    strings.TrimSpace(req.Description),
		PricePerLesson: req.PricePerLesson,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID returns nil when the program does not exist.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Program, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]*Program, error) {
	return s.repo.List(ctx, activeOnly)
}

// Update applies an explicit patch.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateRequest) (*Program, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProgramNotFound
	}

	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		p.Description = strings.TrimSpace(*req.Description)
	}
	if req.PricePerLesson != nil {
		p.PricePerLesson = *req.PricePerLesson
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	p.UpdatedAt = s.now().UTC()
	return p, nil
}
