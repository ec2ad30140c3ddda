package enrollment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sqooli/partner-api/internal/domain/campaign"
	"github.com/sqooli/partner-api/internal/domain/program"
	"github.com/sqooli/partner-api/internal/domain/transaction"
	"github.com/sqooli/partner-api/internal/pkg/credential"
)

const redeemCodeAttempts = 3

// ProgramLookup resolves enrolled programs.
type ProgramLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*program.Program, error)
}

// CampaignLookup resolves the campaign an enrollment came through.
type CampaignLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*campaign.Campaign, error)
}

// TransactionLookup resolves the payment behind an enrollment.
type TransactionLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error)
}

// Service handles program enrollments
type Service struct {
	repo         Repository
	programs     ProgramLookup
	campaigns    CampaignLookup
	transactions TransactionLookup
	now          func() time.Time
}

// NewService creates enrollment service
func NewService(repo Repository, programs ProgramLookup, campaigns CampaignLookup, transactions TransactionLookup) *Service {
	return &Service{
		repo:         repo,
		programs:     programs,
		campaigns:    campaigns,
		transactions: transactions,
		now:          time.Now,
	}
}

// Create enrolls a student. At most one enrollment exists per transaction.
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*Enrollment, error) {
	if err := s.checkRefs(ctx, req); err != nil {
		return nil, err
	}
	if req.TransactionID != nil {
		existing, err := s.repo.GetByTransactionID(ctx, *req.TransactionID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrAlreadyEnrolled
		}
	}

	status := req.Status
	if status == "" {
		status = StatusPending
	}
	programID := req.ProgramID
	now := s.now().UTC()
	e := &Enrollment{
		ProgramID:     &programID,
		CampaignID:    req.CampaignID,
		TransactionID: req.TransactionID,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req.Meta != nil {
		e.Meta.V = *req.Meta
	}

	code := strings.ToUpper(strings.TrimSpace(req.RedeemCode))
	for attempt := 1; ; attempt++ {
		e.ID = uuid.New()
		e.RedeemCode = code
		if code == "" {
			generated, err := credential.RedeemCode()
			if err != nil {
				return nil, err
			}
			e.RedeemCode = generated
		}

		err := s.repo.Create(ctx, e)
		if err == nil {
			return e, nil
		}
		// Only generated codes are retried; a caller-chosen code is final.
		if !errors.Is(err, ErrRedeemCodeTaken) || code != "" || attempt == redeemCodeAttempts {
			return nil, err
		}
		log.Debug().Str("redeem_code", e.RedeemCode).Msg("redeem code collision, regenerating")
	}
}

func (s *Service) checkRefs(ctx context.Context, req *CreateRequest) error {
	p, err := s.programs.GetByID(ctx, req.ProgramID)
	if err != nil {
		return err
	}
	if p == nil {
		return program.ErrProgramNotFound
	}
	var c *campaign.Campaign
	if req.CampaignID != nil {
		c, err = s.campaigns.GetByID(ctx, *req.CampaignID)
		if err != nil {
			return err
		}
		if c == nil {
			return campaign.ErrCampaignNotFound
		}
	}
	if req.TransactionID != nil {
		t, err := s.transactions.GetByID(ctx, *req.TransactionID)
		if err != nil {
			return err
		}
		if t == nil {
			return transaction.ErrTransactionNotFound
		}
		if c != nil && c.PartnerID != t.PartnerID {
			return ErrPartnerMismatch
		}
	}
	return nil
}

// GetByID returns nil when absent.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Enrollment, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByTransactionID is the duplicate check before settling a payment.
// It returns nil when the transaction has no enrollment.
func (s *Service) GetByTransactionID(ctx context.Context, transactionID uuid.UUID) (*Enrollment, error) {
	return s.repo.GetByTransactionID(ctx, transactionID)
}

func (s *Service) GetByRedeemCode(ctx context.Context, code string) (*Enrollment, error) {
	return s.repo.GetByRedeemCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
}

func (s *Service) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]*Enrollment, error) {
	return s.repo.ListByCampaign(ctx, campaignID)
}

// UpdateStatus moves a pending enrollment to redeemed or expired.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Enrollment, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrEnrollmentNotFound
	}
	if !e.CanMoveTo(status) {
		return nil, ErrInvalidTransition
	}
	if err := s.repo.UpdateStatus(ctx, id, e.Status, status); err != nil {
		return nil, err
	}
	e.Status = status
	e.UpdatedAt = s.now().UTC()
	return e, nil
}

// PartnerOf resolves which partner owns e through its campaign and its
// payment. ok is false when neither link exists, or when the links name
// different partners.
func (s *Service) PartnerOf(ctx context.Context, e *Enrollment) (partnerID uuid.UUID, ok bool, err error) {
	if e.CampaignID != nil {
		c, err := s.campaigns.GetByID(ctx, *e.CampaignID)
		if err != nil || c == nil {
			return uuid.Nil, false, err
		}
		partnerID, ok = c.PartnerID, true
	}
	if e.TransactionID != nil {
		t, err := s.transactions.GetByID(ctx, *e.TransactionID)
		if err != nil || t == nil {
			return uuid.Nil, false, err
		}
		if ok && t.PartnerID != partnerID {
			return uuid.Nil, false, nil
		}
		partnerID, ok = t.PartnerID, true
	}
	return partnerID, ok, nil
}
