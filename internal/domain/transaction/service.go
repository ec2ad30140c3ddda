package transaction

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sqooli/partner-api/internal/domain/partner"
)

// PartnerLookup checks payment owners.
type PartnerLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*partner.Partner, error)
}

// Service handles the payment ledger
type Service struct {
	repo     Repository
	partners PartnerLookup
	now      func() time.Time
}

// NewService creates transaction service
func NewService(repo Repository, partners PartnerLookup) *Service {
	return &Service{repo: repo, partners: partners, now: time.Now}
}

// Record stores a confirmed payment. M-Pesa codes are unique.
func (s *Service) Record(ctx context.Context, req *RecordRequest) (*Transaction, error) {
	p, err := s.partners.GetByID(ctx, req.PartnerID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, partner.ErrPartnerNotFound
	}

	code := strings.ToUpper(strings.TrimSpace(req.MpesaCode))
	existing, err := s.repo.GetByMpesaCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateMpesaCode
	}

	now := s.now().UTC()
	t := &Transaction{
		ID:           uuid.New(),
		PartnerID:    req.PartnerID,
		StudentName:  strings.TrimSpace(req.StudentName),
		Phone:        strings.TrimSpace(req.Phone),
		MpesaCode:    code,
		Amount:       req.Amount,
		CampaignCode: strings.TrimSpace(req.CampaignCode),
		Status:       strings.TrimSpace(req.Status),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// GetByID returns nil when absent.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByMpesaCode returns nil when absent.
func (s *Service) GetByMpesaCode(ctx context.Context, code string) (*Transaction, error) {
	return s.repo.GetByMpesaCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
}

func (s *Service) ListByPartner(ctx context.Context, partnerID uuid.UUID, f Filter) ([]*Transaction, error) {
	return s.repo.ListByPartner(ctx, partnerID, f)
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Transaction, error) {
	if err := s.repo.UpdateStatus(ctx, id, strings.TrimSpace(status)); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// MarkVerified stamps verified_at once; later calls keep the first stamp.
func (s *Service) MarkVerified(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTransactionNotFound
	}
	if err := s.repo.MarkVerified(ctx, id, s.now().UTC()); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}
