package enrollment

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
	transactionConstraint = "program_enrollments_transaction_id_key"
	redeemCodeConstraint  = "program_enrollments_redeem_code_key"
)

// Repository defines enrollment data access interface
type Repository interface {
	Create(ctx context.Context, e *Enrollment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Enrollment, error)
	GetByTransactionID(ctx context.Context, transactionID uuid.UUID) (*Enrollment, error)
	GetByRedeemCode(ctx context.Context, code string) (*Enrollment, error)
	ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]*Enrollment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) error

	// RedeemTx inserts e as redeemed inside tx, or redeems the pending
	// enrollment already linked to the same transaction. An already
	// redeemed link is returned as is; an expired one is ErrNotRedeemable.
	RedeemTx(ctx context.Context, tx *sqlx.Tx, e *Enrollment) (*Enrollment, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new enrollment repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, e *Enrollment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO program_enrollments (id, program_id, campaign_id, redeem_code, transaction_id, status, meta,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, e.ID, e.ProgramID, e.CampaignID, e.RedeemCode, e.TransactionID, e.Status, e.Meta, e.CreatedAt, e.UpdatedAt)
	if constraint, ok := database.UniqueViolation(err); ok {
		switch constraint {
		case transactionConstraint:
			return fmt.Errorf("%w: %w", ErrAlreadyEnrolled, err)
		case redeemCodeConstraint:
			return fmt.Errorf("%w: %w", ErrRedeemCodeTaken, err)
		}
	}
	return err
}

func (r *repository) get(ctx context.Context, q sqlx.QueryerContext, where string, arg interface{}) (*Enrollment, error) {
	var e Enrollment
	err := sqlx.GetContext(ctx, q, &e, `SELECT * FROM program_enrollments WHERE `+where, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Enrollment, error) {
	return r.get(ctx, r.db, `id = $1`, id)
}

func (r *repository) GetByTransactionID(ctx context.Context, transactionID uuid.UUID) (*Enrollment, error) {
	return r.get(ctx, r.db, `transaction_id = $1`, transactionID)
}

func (r *repository) GetByRedeemCode(ctx context.Context, code string) (*Enrollment, error) {
	return r.get(ctx, r.db, `redeem_code = $1`, code)
}

func (r *repository) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]*Enrollment, error) {
	var list []*Enrollment
	err := r.db.SelectContext(ctx, &list, `
		SELECT * FROM program_enrollments WHERE campaign_id = $1 ORDER BY created_at DESC
	`, campaignID)
	return list, err
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE program_enrollments SET status = $3, updated_at = now() WHERE id = $1 AND status = $2
	`, id, from, to)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrInvalidTransition
	}
	return nil
}

func (r *repository) RedeemTx(ctx context.Context, tx *sqlx.Tx, e *Enrollment) (*Enrollment, error) {
	var stored Enrollment
	err := tx.GetContext(ctx, &stored, `
		INSERT INTO program_enrollments (id, program_id, campaign_id, redeem_code, transaction_id, status, meta,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 'redeemed', $6, $7, $7)
		ON CONFLICT (transaction_id) DO UPDATE
			SET status = 'redeemed', updated_at = EXCLUDED.updated_at
			WHERE program_enrollments.status = 'pending'
		RETURNING *
	`, e.ID, e.ProgramID, e.CampaignID, e.RedeemCode, e.TransactionID, e.Meta, e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		linked, err := r.get(ctx, tx, `transaction_id = $1`, e.TransactionID)
		if err != nil {
			return nil, err
		}
		if linked == nil || linked.Status != StatusRedeemed {
			return nil, ErrNotRedeemable
		}
		return linked, nil
	}
	if constraint, ok := database.UniqueViolation(err); ok && constraint == redeemCodeConstraint {
		return nil, fmt.Errorf("%w: %w", ErrRedeemCodeTaken, err)
	}
	if err != nil {
		return nil, err
	}
	return &stored, nil
}
