package wallet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sqooli/partner-api/internal/pkg/database"
)

const (
	partnerConstraint       = "wallets_partner_id_key"
	accountNumberConstraint = "wallets_account_number_key"
)

// Repository defines wallet and withdrawal limit data access
type Repository interface {
	Create(ctx context.Context, w *Wallet) error
	GetByPartner(ctx context.Context, partnerID uuid.UUID) (*Wallet, error)
	Credit(ctx context.Context, partnerID uuid.UUID, amount float64) (*Wallet, error)
	CreditTx(ctx context.Context, tx *sqlx.Tx, partnerID uuid.UUID, amount float64) (*Wallet, error)
	UpdatePin(ctx context.Context, partnerID uuid.UUID, pinHash string) error
	UpdatePayout(ctx context.Context, w *Wallet) error

	CreateLimit(ctx context.Context, l *Limit) error
	GetLimit(ctx context.Context, id uuid.UUID) (*Limit, error)
	UpdateLimit(ctx context.Context, l *Limit) error
	ListLimits(ctx context.Context) ([]*Limit, error)
	ListActiveLimits(ctx context.Context, partnerID uuid.UUID) ([]*Limit, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new wallet repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, w *Wallet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO wallets (id, partner_id, account_number, withdrawal_method, mpesa_phone, bank_name,
			bank_account_number, paybill_number, till_number, account_name, beneficiaries, pin_hash,
			setup_completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`, w.ID, w.PartnerID, w.AccountNumber, w.WithdrawalMethod, w.MpesaPhone, w.BankName,
		w.BankAccountNumber, w.PaybillNumber, w.TillNumber, w.AccountName, w.Beneficiaries, w.PinHash,
		w.SetupCompletedAt, w.CreatedAt, w.UpdatedAt)
	if constraint, ok := database.UniqueViolation(err); ok {
		switch constraint {
		case partnerConstraint:
			return fmt.Errorf("%w: %w", ErrWalletExists, err)
		case accountNumberConstraint:
			return fmt.Errorf("%w: %w", errAccountNumberTaken, err)
		}
	}
	return err
}

func (r *repository) GetByPartner(ctx context.Context, partnerID uuid.UUID) (*Wallet, error) {
	var w Wallet
	err := r.db.GetContext(ctx, &w, `SELECT * FROM wallets WHERE partner_id = $1`, partnerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *repository) Credit(ctx context.Context, partnerID uuid.UUID, amount float64) (*Wallet, error) {
	var w *Wallet
	err := database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var err error
		w, err = r.CreditTx(ctx, tx, partnerID, amount)
		return err
	})
	return w, err
}

// CreditTx adds amount to balance and lifetime earnings under a row lock.
func (r *repository) CreditTx(ctx context.Context, tx *sqlx.Tx, partnerID uuid.UUID, amount float64) (*Wallet, error) {
	if err := lockWallet(ctx, tx, partnerID); err != nil {
		return nil, err
	}

	var w Wallet
	err := tx.GetContext(ctx, &w, `
		UPDATE wallets
		SET balance = balance + $2, lifetime_earnings = lifetime_earnings + $2, updated_at = now()
		WHERE partner_id = $1
		RETURNING *
	`, partnerID, amount)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func lockWallet(ctx context.Context, tx *sqlx.Tx, partnerID uuid.UUID) error {
	var id uuid.UUID
	err := tx.GetContext(ctx, &id, `SELECT id FROM wallets WHERE partner_id = $1 FOR UPDATE`, partnerID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrWalletNotFound
	}
	return err
}

func (r *repository) UpdatePin(ctx context.Context, partnerID uuid.UUID, pinHash string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE wallets SET pin_hash = $2, updated_at = now() WHERE partner_id = $1
	`, partnerID, pinHash)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrWalletNotFound
	}
	return nil
}

func (r *repository) UpdatePayout(ctx context.Context, w *Wallet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE wallets
		SET withdrawal_method = $2, mpesa_phone = $3, bank_name = $4, bank_account_number = $5,
			paybill_number = $6, till_number = $7, account_name = $8, beneficiaries = $9,
			setup_completed_at = $10, updated_at = $11
		WHERE partner_id = $1
	`, w.PartnerID, w.WithdrawalMethod, w.MpesaPhone, w.BankName, w.BankAccountNumber,
		w.PaybillNumber, w.TillNumber, w.AccountName, w.Beneficiaries, w.SetupCompletedAt, w.UpdatedAt)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrWalletNotFound
	}
	return nil
}

func (r *repository) CreateLimit(ctx context.Context, l *Limit) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO withdrawal_limits (id, partner_id, min_amount, max_amount, daily_limit, monthly_limit,
			processing_days, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, l.ID, l.PartnerID, l.MinAmount, l.MaxAmount, l.DailyLimit, l.MonthlyLimit, l.ProcessingDays,
		l.IsActive, l.CreatedAt, l.UpdatedAt)
	return err
}

func (r *repository) GetLimit(ctx context.Context, id uuid.UUID) (*Limit, error) {
	var l Limit
	err := r.db.GetContext(ctx, &l, `SELECT * FROM withdrawal_limits WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) UpdateLimit(ctx context.Context, l *Limit) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE withdrawal_limits
		SET min_amount = $2, max_amount = $3, daily_limit = $4, monthly_limit = $5,
			processing_days = $6, is_active = $7, updated_at = $8
		WHERE id = $1
	`, l.ID, l.MinAmount, l.MaxAmount, l.DailyLimit, l.MonthlyLimit, l.ProcessingDays, l.IsActive, l.UpdatedAt)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrLimitNotFound
	}
	return nil
}

func (r *repository) ListLimits(ctx context.Context) ([]*Limit, error) {
	var limits []*Limit
	err := r.db.SelectContext(ctx, &limits, `
		SELECT * FROM withdrawal_limits ORDER BY partner_id NULLS FIRST, updated_at DESC
	`)
	return limits, err
}

// ListActiveLimits returns the active rows of partnerID and the active
// platform defaults, newest first.
func (r *repository) ListActiveLimits(ctx context.Context, partnerID uuid.UUID) ([]*Limit, error) {
	var limits []*Limit
	err := r.db.SelectContext(ctx, &limits, `
		SELECT * FROM withdrawal_limits
		WHERE is_active AND (partner_id = $1 OR partner_id IS NULL)
		ORDER BY updated_at DESC
	`, partnerID)
	return limits, err
}
