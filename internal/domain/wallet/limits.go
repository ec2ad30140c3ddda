package wallet

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// CreateLimit adds a withdrawal limit. A nil partner makes it the
// platform default.
func (s *Service) CreateLimit(ctx context.Context, req *LimitRequest) (*Limit, error) {
	if req.MinAmount > req.MaxAmount {
		return nil, ErrInvalidLimit
	}
	if req.PartnerID != nil {
		if err := s.checkPartner(ctx, *req.PartnerID); err != nil {
			return nil, err
		}
	}

	now := s.now().UTC()
	l := &Limit{
		ID:             uuid.New(),
		PartnerID:      req.PartnerID,
		MinAmount:      req.MinAmount,
		MaxAmount:      req.MaxAmount,
		DailyLimit:     req.DailyLimit,
		MonthlyLimit:   req.MonthlyLimit,
		ProcessingDays: req.ProcessingDays,
		IsActive:       req.IsActive == nil || *req.IsActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.CreateLimit(ctx, l); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, "withdrawal_limit.create", "withdrawal_limit", l.ID, nil, l)
	return l, nil
}

func (s *Service) UpdateLimit(ctx context.Context, id uuid.UUID, req *UpdateLimitRequest) (*Limit, error) {
	l, err := s.repo.GetLimit(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrLimitNotFound
	}

	old := *l
	if req.MinAmount != nil {
		l.MinAmount = *req.MinAmount
	}
	if req.MaxAmount != nil {
		l.MaxAmount = *req.MaxAmount
	}
	if req.DailyLimit != nil {
		l.DailyLimit = *req.DailyLimit
	}
	if req.MonthlyLimit != nil {
		l.MonthlyLimit = *req.MonthlyLimit
	}
	if req.ProcessingDays != nil {
		l.ProcessingDays = *req.ProcessingDays
	}
	if req.IsActive != nil {
		l.IsActive = *req.IsActive
	}
	if l.MinAmount > l.MaxAmount {
		return nil, ErrInvalidLimit
	}

	l.UpdatedAt = s.now().UTC()
	if err := s.repo.UpdateLimit(ctx, l); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, "withdrawal_limit.update", "withdrawal_limit", l.ID, &old, l)
	return l, nil
}

func (s *Service) ListLimits(ctx context.Context) ([]*Limit, error) {
	return s.repo.ListLimits(ctx)
}

// GetActiveLimit returns the limit in force for partnerID: its own active
// row if any, otherwise the platform default. Rows are never merged.
// It returns nil when neither exists.
func (s *Service) GetActiveLimit(ctx context.Context, partnerID uuid.UUID) (*Limit, error) {
	limits, err := s.repo.ListActiveLimits(ctx, partnerID)
	if err != nil {
		return nil, err
	}

	var fallback *Limit
	for _, l := range limits {
		if !l.IsActive {
			continue
		}
		if l.PartnerID != nil && *l.PartnerID == partnerID {
			return l, nil
		}
		if l.PartnerID == nil && fallback == nil {
			fallback = l
		}
	}
	return fallback, nil
}

// CheckWithdrawalAmount tests amount against the active limit's bounds.
// Without any active limit withdrawals are not allowed.
func (s *Service) CheckWithdrawalAmount(ctx context.Context, partnerID uuid.UUID, amount float64) (*AmountCheck, error) {
	l, err := s.GetActiveLimit(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	switch {
	case l == nil:
		return &AmountCheck{Reason: "no withdrawal limits configured"}, nil
	case amount < l.MinAmount:
		return &AmountCheck{Reason: fmt.Sprintf("minimum withdrawal is %.2f", l.MinAmount), Limit: l}, nil
	case amount > l.MaxAmount:
		return &AmountCheck{Reason: fmt.Sprintf("maximum withdrawal is %.2f", l.MaxAmount), Limit: l}, nil
	}
	return &AmountCheck{Allowed: true, Limit: l}, nil
}
