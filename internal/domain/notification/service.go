package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sqooli/partner-api/internal/pkg/batch"
)

// Service handles notification logic
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates notification service
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Create appends a notification
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*Notification, error) {
	n := &Notification{
		ID:        uuid.New(),
		PartnerID: req.PartnerID,
		UserID:    req.UserID,
		Type:      req.Type,
		Title:     strings.TrimSpace(req.Title),
		Body:      strings.TrimSpace(req.Body),
		CreatedAt: s.now().UTC(),
	}
	if req.Data != nil {
		n.Data.V = *req.Data
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// ListByPartner returns the newest notifications first
func (s *Service) ListByPartner(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*Notification, error) {
	return s.repo.ListByPartner(ctx, partnerID, limit, offset)
}

func (s *Service) UnreadCount(ctx context.Context, partnerID uuid.UUID) (int, error) {
	return s.repo.CountUnread(ctx, partnerID)
}

// GetByID returns nil when absent.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Notification, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) MarkRead(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkRead(ctx, id, s.now().UTC())
}

// MarkAllRead marks every unread notification of the partner one by one.
// A failed item leaves the others read.
func (s *Service) MarkAllRead(ctx context.Context, partnerID uuid.UUID) (batch.Result, error) {
	ids, err := s.repo.UnreadIDs(ctx, partnerID)
	if err != nil {
		return batch.Result{}, err
	}
	res := batch.Run(ctx, ids, batch.DefaultConcurrency, s.MarkRead)
	if res.Failed > 0 {
		log.Warn().Str("partner_id", partnerID.String()).Int("failed", res.Failed).Msg("some notifications not marked read")
	}
	return res, nil
}

// --- Helpers for domain events ---

// NotifySettlement tells a partner a payment was attributed to it.
// Failures are logged, never returned.
func (s *Service) NotifySettlement(ctx context.Context, partnerID, transactionID uuid.UUID, campaignID *uuid.UUID, amount float64, fallback bool) {
	body := fmt.Sprintf("You earned KES %.2f from a new enrollment", amount)
	if fallback {
		body += " (default share, no matching campaign)"
	}
	_, err := s.Create(ctx, &CreateRequest{
		PartnerID: partnerID,
		Type:      TypeRevenueSettled,
		Title:     "New revenue",
		Body:      body,
		Data:      &Data{TransactionID: &transactionID, CampaignID: campaignID, Amount: &amount},
	})
	if err != nil {
		log.Error().Err(err).Str("transaction_id", transactionID.String()).Msg("failed to notify settlement")
	}
}

// NotifyWalletCredit tells a partner its wallet was credited by an operator.
func (s *Service) NotifyWalletCredit(ctx context.Context, partnerID uuid.UUID, amount float64) {
	_, err := s.Create(ctx, &CreateRequest{
		PartnerID: partnerID,
		Type:      TypeWalletCredited,
		Title:     "Wallet credited",
		Body:      fmt.Sprintf("KES %.2f was added to your wallet", amount),
		Data:      &Data{Amount: &amount},
	})
	if err != nil {
		log.Error().Err(err).Str("partner_id", partnerID.String()).Msg("failed to notify wallet credit")
	}
}
