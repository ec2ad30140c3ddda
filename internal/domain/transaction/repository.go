package transaction

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sqooli/partner-api/internal/pkg/database"
)

// Repository defines transaction data access interface
type Repository interface {
	Create(ctx context.Context, t *Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	GetByMpesaCode(ctx context.Context, code string) (*Transaction, error)
	ListByPartner(ctx context.Context, partnerID uuid.UUID, f Filter) ([]*Transaction, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	MarkVerified(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkVerifiedTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, at time.Time) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new transaction repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, t *Transaction) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (id, partner_id, student_name, phone, mpesa_code, amount, campaign_code,
			status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, t.ID, t.PartnerID, t.StudentName, t.Phone, t.MpesaCode, t.Amount, t.CampaignCode, t.Status,
		t.CreatedAt, t.UpdatedAt)
	if _, ok := database.UniqueViolation(err); ok {
		return fmt.Errorf("%w: %w", ErrDuplicateMpesaCode, err)
	}
	return err
}

func (r *repository) get(ctx context.Context, where string, arg interface{}) (*Transaction, error) {
	var t Transaction
	err := r.db.GetContext(ctx, &t, `SELECT * FROM transactions WHERE `+where, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return r.get(ctx, `id = $1`, id)
}

func (r *repository) GetByMpesaCode(ctx context.Context, code string) (*Transaction, error) {
	return r.get(ctx, `mpesa_code = $1`, code)
}

func (r *repository) ListByPartner(ctx context.Context, partnerID uuid.UUID, f Filter) ([]*Transaction, error) {
	query := `SELECT * FROM transactions WHERE partner_id = $1`
	args := []interface{}{partnerID}

	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.From != nil {
		args = append(args, *f.From)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if f.To != nil {
		args = append(args, *f.To)
		query += fmt.Sprintf(" AND created_at < $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	var txs []*Transaction
	err := r.db.SelectContext(ctx, &txs, query, args...)
	return txs, err
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE transactions SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

func (r *repository) MarkVerified(ctx context.Context, id uuid.UUID, at time.Time) error {
	return markVerified(ctx, r.db, id, at)
}

func (r *repository) MarkVerifiedTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, at time.Time) error {
	return markVerified(ctx, tx, id, at)
}

func markVerified(ctx context.Context, exec sqlx.ExecerContext, id uuid.UUID, at time.Time) error {
	_, err := exec.ExecContext(ctx, `
		UPDATE transactions SET verified_at = COALESCE(verified_at, $2), updated_at = now() WHERE id = $1
	`, id, at)
	return err
}
