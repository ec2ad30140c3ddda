package revenue

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sqooli/partner-api/internal/domain/campaign"
	"github.com/sqooli/partner-api/internal/domain/enrollment"
	"github.com/sqooli/partner-api/internal/domain/transaction"
	"github.com/sqooli/partner-api/internal/pkg/credential"
)

const (
	DefaultTimelineDays = 30
	maxTimelineDays     = 365
	DefaultTopLimit     = 10
	redeemCodeAttempts  = 3
)

// TransactionLookup resolves payments.
type TransactionLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error)
}

// CampaignLister lists a partner's campaigns for code matching.
type CampaignLister interface {
	ListByPartner(ctx context.Context, partnerID uuid.UUID, status campaign.Status) ([]*campaign.Campaign, error)
}

// EnrollmentLookup finds the enrollment created for a payment.
type EnrollmentLookup interface {
	GetByTransactionID(ctx context.Context, transactionID uuid.UUID) (*enrollment.Enrollment, error)
}

// Notifier tells partners about settled revenue. It must not fail the caller.
type Notifier interface {
	NotifySettlement(ctx context.Context, partnerID, transactionID uuid.UUID, campaignID *uuid.UUID, amount float64, fallback bool)
}

// Service attributes payments to partners
type Service struct {
	repo         Repository
	ledger       Ledger
	transactions TransactionLookup
	campaigns    CampaignLister
	enrollments  EnrollmentLookup
	notifier     Notifier
	loc          *time.Location
	now          func() time.Time
}

// NewService creates revenue service. Timeline days are calendar days in loc.
func NewService(repo Repository, ledger Ledger, transactions TransactionLookup, campaigns CampaignLister,
	enrollments EnrollmentLookup, notifier Notifier, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		repo:         repo,
		ledger:       ledger,
		transactions: transactions,
		campaigns:    campaigns,
		enrollments:  enrollments,
		notifier:     notifier,
		loc:          loc,
		now:          time.Now,
	}
}

// Settle attributes a successful payment: it logs the split, redeems the
// enrollment, credits the wallet and stamps the payment, all or nothing.
// Settling twice returns the first settlement flagged AlreadySettled.
func (s *Service) Settle(ctx context.Context, transactionID uuid.UUID) (*Settlement, error) {
	t, err := s.transactions.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, transaction.ErrTransactionNotFound
	}
	if !t.IsSuccess() {
		return nil, ErrNotSettleable
	}

	existing, err := s.repo.GetByTransactionID(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return s.settled(ctx, existing)
	}

	campaigns, err := s.campaigns.ListByPartner(ctx, t.PartnerID, "")
	if err != nil {
		return nil, err
	}
	matched := MatchCampaign(campaigns, t.CampaignCode)
	split := ComputeSplit(t.Amount, matched)

	var (
		plan   *Plan
		stored *enrollment.Enrollment
	)
	for attempt := 1; ; attempt++ {
		if plan, err = s.plan(t, matched, split); err != nil {
			return nil, err
		}
		stored, err = s.ledger.Apply(ctx, plan)
		if !errors.Is(err, enrollment.ErrRedeemCodeTaken) || attempt == redeemCodeAttempts {
			break
		}
		log.Debug().Str("redeem_code", plan.Enrollment.RedeemCode).Msg("redeem code collision, settling again")
	}
	if errors.Is(err, errAlreadySettled) {
		// Lost a race with a concurrent settle of the same payment.
		existing, err := s.repo.GetByTransactionID(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		return s.settled(ctx, existing)
	}
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("transaction_id", t.ID.String()).
		Str("partner_id", t.PartnerID.String()).
		Float64("partner_share", split.PartnerShare).
		Bool("fallback", split.Fallback).
		Msg("transaction settled")

	s.notifier.NotifySettlement(ctx, t.PartnerID, t.ID, split.CampaignID, split.PartnerShare, split.Fallback)

	return &Settlement{TransactionID: t.ID, Split: split, Log: plan.Log, Enrollment: stored}, nil
}

func (s *Service) plan(t *transaction.Transaction, matched *campaign.Campaign, split Split) (*Plan, error) {
	code, err := credential.RedeemCode()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	txID := t.ID
	e := &enrollment.Enrollment{
		ID:            uuid.New(),
		CampaignID:    split.CampaignID,
		RedeemCode:    code,
		TransactionID: &txID,
		Status:        enrollment.StatusRedeemed,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	e.Meta.V = enrollment.Meta{Phone: t.Phone, PaymentAmount: t.Amount}
	if matched != nil {
		programID := matched.ProgramID
		e.ProgramID = &programID
	}

	return &Plan{
		Log: &Log{
			ID:                uuid.New(),
			PartnerID:         t.PartnerID,
			CampaignID:        split.CampaignID,
			TransactionID:     t.ID,
			Amount:            split.PartnerShare,
			GrossAmount:       split.Gross,
			PartnerPercentage: split.PartnerPercentage,
			Fallback:          split.Fallback,
			SplitTimestamp:    now,
		},
		Enrollment: e,
		VerifiedAt: now,
	}, nil
}

func (s *Service) settled(ctx context.Context, l *Log) (*Settlement, error) {
	e, err := s.enrollments.GetByTransactionID(ctx, l.TransactionID)
	if err != nil {
		return nil, err
	}
	return &Settlement{
		TransactionID: l.TransactionID,
		Split: Split{
			Gross:             l.GrossAmount,
			PartnerShare:      l.Amount,
			PlatformShare:     roundCents(l.GrossAmount - l.Amount),
			PartnerPercentage: l.PartnerPercentage,
			CampaignID:        l.CampaignID,
			Fallback:          l.Fallback,
		},
		Log:            l,
		Enrollment:     e,
		AlreadySettled: true,
	}, nil
}

// PreviewSplit computes the split a payment would get without writing.
func (s *Service) PreviewSplit(ctx context.Context, partnerID uuid.UUID, amount float64, code string) (Split, error) {
	campaigns, err := s.campaigns.ListByPartner(ctx, partnerID, "")
	if err != nil {
		return Split{}, err
	}
	return ComputeSplit(amount, MatchCampaign(campaigns, code)), nil
}

// LogRevenue appends one revenue row. It never touches the payment or
// the wallet.
func (s *Service) LogRevenue(ctx context.Context, req *LogRequest) (*Log, error) {
	if req.PartnerPercentage < 0 || req.PartnerPercentage > 100 {
		return nil, ErrInvalidPercent
	}
	t, err := s.transactions.GetByID(ctx, req.TransactionID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, transaction.ErrTransactionNotFound
	}

	l := &Log{
		ID:                uuid.New(),
		PartnerID:         req.PartnerID,
		CampaignID:        req.CampaignID,
		TransactionID:     req.TransactionID,
		Amount:            roundCents(req.Amount),
		GrossAmount:       roundCents(req.GrossAmount),
		PartnerPercentage: req.PartnerPercentage,
		Fallback:          req.Fallback,
		SplitTimestamp:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) ListByPartner(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*Log, error) {
	return s.repo.ListByPartner(ctx, partnerID, limit, offset)
}

// GetEarningsTimeline returns exactly days entries, oldest first, ending
// today. Days without successful payments have zero amounts.
func (s *Service) GetEarningsTimeline(ctx context.Context, partnerID uuid.UUID, days int) ([]TimelineEntry, error) {
	if days < 1 || days > maxTimelineDays {
		return nil, ErrInvalidDays
	}

	now := s.now().In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	start := today.AddDate(0, 0, -(days - 1))

	totals, err := s.repo.DailyTotals(ctx, partnerID, start, s.loc.String())
	if err != nil {
		return nil, err
	}
	byDay := make(map[string]DailyTotal, len(totals))
	for _, t := range totals {
		byDay[t.Day] = t
	}

	timeline := make([]TimelineEntry, days)
	for i := range timeline {
		day := start.AddDate(0, 0, i).Format(time.DateOnly)
		t := byDay[day]
		timeline[i] = TimelineEntry{
			Date:         day,
			Amount:       roundCents(t.Earnings),
			Gross:        roundCents(t.Gross),
			Transactions: t.Transactions,
		}
	}
	return timeline, nil
}

// GetPartnerEarningsSummary totals the revenue log on every call.
func (s *Service) GetPartnerEarningsSummary(ctx context.Context, partnerID uuid.UUID) (*Summary, error) {
	now := s.now().In(s.loc)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc)
	return s.repo.Summary(ctx, partnerID, monthStart)
}

func (s *Service) GetTopEarningPartners(ctx context.Context, limit int) ([]*TopPartner, error) {
	if limit <= 0 || limit > 100 {
		limit = DefaultTopLimit
	}
	return s.repo.TopPartners(ctx, limit)
}
