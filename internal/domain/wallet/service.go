package wallet

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sqooli/partner-api/internal/domain/partner"
	"github.com/sqooli/partner-api/internal/pkg/credential"
	"github.com/sqooli/partner-api/internal/pkg/password"
)

const (
	accountNumberLength   = 10
	accountNumberAttempts = 3
)

// PartnerLookup checks wallet owners.
type PartnerLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*partner.Partner, error)
}

// Auditor records wallet mutations.
type Auditor interface {
	Record(ctx context.Context, action, entityType string, entityID uuid.UUID, oldValue, newValue interface{})
}

// Notifier tells a partner about operator credits. It must not fail the caller.
type Notifier interface {
	NotifyWalletCredit(ctx context.Context, partnerID uuid.UUID, amount float64)
}

// Service handles partner wallets and withdrawal limits
type Service struct {
	repo     Repository
	partners PartnerLookup
	audit    Auditor
	notifier Notifier
	now      func() time.Time
}

// NewService creates wallet service
func NewService(repo Repository, partners PartnerLookup, audit Auditor, notifier Notifier) *Service {
	return &Service{repo: repo, partners: partners, audit: audit, notifier: notifier, now: time.Now}
}

// CreateWallet opens the single wallet of a partner.
func (s *Service) CreateWallet(ctx context.Context, partnerID uuid.UUID, req *CreateRequest) (*Wallet, error) {
	if err := s.checkPartner(ctx, partnerID); err != nil {
		return nil, err
	}
	existing, err := s.repo.GetByPartner(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrWalletExists
	}
	if err := checkPayout(&req.PayoutDetails); err != nil {
		return nil, err
	}

	pinHash, err := password.Hash(req.Pin)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	w := &Wallet{
		PartnerID:        partnerID,
		PinHash:          pinHash,
		SetupCompletedAt: &now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	applyPayout(w, &req.PayoutDetails)

	for attempt := 1; ; attempt++ {
		w.ID = uuid.New()
		if w.AccountNumber, err = credential.AccountNumber(accountNumberLength); err != nil {
			return nil, err
		}
		err = s.repo.Create(ctx, w)
		if err == nil {
			break
		}
		if !errors.Is(err, errAccountNumberTaken) || attempt == accountNumberAttempts {
			return nil, err
		}
	}

	s.audit.Record(ctx, "wallet.create", "wallet", w.ID, nil, w)
	log.Info().Str("partner_id", partnerID.String()).Str("account_number", w.AccountNumber).Msg("wallet created")
	return w, nil
}

// GetByPartner returns nil when the partner has no wallet.
func (s *Service) GetByPartner(ctx context.Context, partnerID uuid.UUID) (*Wallet, error) {
	return s.repo.GetByPartner(ctx, partnerID)
}

// UpdateWalletBalance credits amount to balance and lifetime earnings.
func (s *Service) UpdateWalletBalance(ctx context.Context, partnerID uuid.UUID, amount float64) (*Wallet, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	w, err := s.repo.Credit(ctx, partnerID, amount)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, "wallet.credit", "wallet", w.ID, nil, map[string]float64{"amount": amount})
	log.Info().Str("partner_id", partnerID.String()).Float64("amount", amount).Float64("balance", w.Balance).Msg("wallet credited")
	s.notifier.NotifyWalletCredit(ctx, partnerID, amount)
	return w, nil
}

// VerifyPin never fails on a bad PIN; the result says why.
func (s *Service) VerifyPin(ctx context.Context, partnerID uuid.UUID, pin string) (*PinCheck, error) {
	w, err := s.repo.GetByPartner(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return &PinCheck{Error: ErrWalletNotFound.Error()}, nil
	}
	if !password.Verify(pin, w.PinHash) {
		return &PinCheck{Error: ErrIncorrectPin.Error()}, nil
	}
	return &PinCheck{Valid: true}, nil
}

func (s *Service) ChangePin(ctx context.Context, partnerID uuid.UUID, req *ChangePinRequest) error {
	w, err := s.mustGet(ctx, partnerID)
	if err != nil {
		return err
	}
	if !password.Verify(req.CurrentPin, w.PinHash) {
		return ErrIncorrectPin
	}
	pinHash, err := password.Hash(req.NewPin)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePin(ctx, partnerID, pinHash); err != nil {
		return err
	}
	s.audit.Record(ctx, "wallet.change_pin", "wallet", w.ID, nil, nil)
	return nil
}

// UpdatePayoutDetails replaces the payout method and its provider fields.
func (s *Service) UpdatePayoutDetails(ctx context.Context, partnerID uuid.UUID, req *PayoutDetails) (*Wallet, error) {
	w, err := s.mustGet(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	if err := checkPayout(req); err != nil {
		return nil, err
	}

	old := *w
	now := s.now().UTC()
	applyPayout(w, req)
	if w.SetupCompletedAt == nil {
		w.SetupCompletedAt = &now
	}
	w.UpdatedAt = now
	if err := s.repo.UpdatePayout(ctx, w); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, "wallet.update_payout", "wallet", w.ID, payoutView(&old), payoutView(w))
	return w, nil
}

func (s *Service) mustGet(ctx context.Context, partnerID uuid.UUID) (*Wallet, error) {
	w, err := s.repo.GetByPartner(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, ErrWalletNotFound
	}
	return w, nil
}

func (s *Service) checkPartner(ctx context.Context, id uuid.UUID) error {
	p, err := s.partners.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return partner.ErrPartnerNotFound
	}
	return nil
}

func applyPayout(w *Wallet, d *PayoutDetails) {
	w.WithdrawalMethod = d.WithdrawalMethod
	w.MpesaPhone = strings.TrimSpace(d.MpesaPhone)
	w.BankName = strings.TrimSpace(d.BankName)
	w.BankAccountNumber = strings.TrimSpace(d.BankAccountNumber)
	w.PaybillNumber = strings.TrimSpace(d.PaybillNumber)
	w.TillNumber = strings.TrimSpace(d.TillNumber)
	w.AccountName = strings.TrimSpace(d.AccountName)
	w.Beneficiaries.V = d.Beneficiaries
	if w.Beneficiaries.V == nil {
		w.Beneficiaries.V = []Beneficiary{}
	}
}

// checkPayout requires the provider fields of the chosen method.
func checkPayout(d *PayoutDetails) error {
	var missing string
	switch d.WithdrawalMethod {
	case MethodMpesa:
		if strings.TrimSpace(d.MpesaPhone) == "" {
			missing = "mpesa_phone"
		}
	case MethodBank:
		if strings.TrimSpace(d.BankName) == "" || strings.TrimSpace(d.BankAccountNumber) == "" {
			missing = "bank_name and bank_account_number"
		}
	case MethodPaybill:
		if strings.TrimSpace(d.PaybillNumber) == "" {
			missing = "paybill_number"
		}
	case MethodTill:
		if strings.TrimSpace(d.TillNumber) == "" {
			missing = "till_number"
		}
	}
	if missing != "" {
		return fmt.Errorf("%w: %s required", ErrPayoutIncomplete, missing)
	}
	return nil
}

func payoutView(w *Wallet) map[string]interface{} {
	return map[string]interface{}{
		"withdrawal_method":   w.WithdrawalMethod,
		"mpesa_phone":         w.MpesaPhone,
		"bank_name":           w.BankName,
		"bank_account_number": w.BankAccountNumber,
		"paybill_number":      w.PaybillNumber,
		"till_number":         w.TillNumber,
		"account_name":        w.AccountName,
	}
}
