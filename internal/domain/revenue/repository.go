package revenue

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

// Repository defines revenue log data access. Aggregates are always
// recomputed from the log.
type Repository interface {
	Create(ctx context.Context, l *Log) error
	InsertTx(ctx context.Context, tx *sqlx.Tx, l *Log) (bool, error)
	GetByTransactionID(ctx context.Context, transactionID uuid.UUID) (*Log, error)
	ListByPartner(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*Log, error)
	DailyTotals(ctx context.Context, partnerID uuid.UUID, from time.Time, tz string) ([]DailyTotal, error)
	Summary(ctx context.Context, partnerID uuid.UUID, monthStart time.Time) (*Summary, error)
	TopPartners(ctx context.Context, limit int) ([]*TopPartner, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new revenue repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const insertLog = `
	INSERT INTO partner_revenue_logs (id, partner_id, campaign_id, transaction_id, amount, gross_amount,
		partner_percentage, fallback, split_timestamp)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

func (r *repository) Create(ctx context.Context, l *Log) error {
	_, err := r.db.ExecContext(ctx, insertLog, l.ID, l.PartnerID, l.CampaignID, l.TransactionID, l.Amount,
		l.GrossAmount, l.PartnerPercentage, l.Fallback, l.SplitTimestamp)
	if _, ok := database.UniqueViolation(err); ok {
		return fmt.Errorf("%w: %w", ErrAlreadyLogged, err)
	}
	return err
}

// InsertTx reports false when the transaction already has a log row.
// A concurrent insert for the same transaction blocks until the first
// commits, then reports false.
func (r *repository) InsertTx(ctx context.Context, tx *sqlx.Tx, l *Log) (bool, error) {
	res, err := tx.ExecContext(ctx, insertLog+` ON CONFLICT (transaction_id) DO NOTHING`,
		l.ID, l.PartnerID, l.CampaignID, l.TransactionID, l.Amount, l.GrossAmount, l.PartnerPercentage,
		l.Fallback, l.SplitTimestamp)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

func (r *repository) GetByTransactionID(ctx context.Context, transactionID uuid.UUID) (*Log, error) {
	var l Log
	err := r.db.GetContext(ctx, &l, `SELECT * FROM partner_revenue_logs WHERE transaction_id = $1`, transactionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) ListByPartner(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*Log, error) {
	var logs []*Log
	err := r.db.SelectContext(ctx, &logs, `
		SELECT * FROM partner_revenue_logs
		WHERE partner_id = $1
		ORDER BY split_timestamp DESC
		LIMIT $2 OFFSET $3
	`, partnerID, limit, offset)
	return logs, err
}

// DailyTotals groups the partner's successful payments since from by
// calendar day in tz. A settled payment earns its logged share; an
// unsettled one earns the share its campaign code would get, or the
// default percentage when no campaign matches.
func (r *repository) DailyTotals(ctx context.Context, partnerID uuid.UUID, from time.Time, tz string) ([]DailyTotal, error) {
	var totals []DailyTotal
	err := r.db.SelectContext(ctx, &totals, `
		SELECT to_char((t.created_at AT TIME ZONE $3)::date, 'YYYY-MM-DD') AS day,
			COALESCE(SUM(COALESCE(l.amount, ROUND(t.amount * CASE
				WHEN c.id IS NULL THEN $4
				ELSE COALESCE((c.revenue_share->>'partner_percentage')::numeric, 0)
			END / 100, 2))), 0) AS earnings,
			COALESCE(SUM(t.amount), 0) AS gross,
			COUNT(t.id) AS transactions
		FROM transactions t
		LEFT JOIN partner_revenue_logs l ON l.transaction_id = t.id
		LEFT JOIN campaigns c ON c.partner_id = t.partner_id
			AND c.promo_code = t.campaign_code AND t.campaign_code <> ''
		WHERE t.partner_id = $1 AND t.status = 'Success' AND t.created_at >= $2
		GROUP BY 1
	`, partnerID, from, tz, DefaultPartnerPercentage)
	return totals, err
}

func (r *repository) Summary(ctx context.Context, partnerID uuid.UUID, monthStart time.Time) (*Summary, error) {
	var s Summary
	err := r.db.GetContext(ctx, &s, `
		SELECT $1::uuid AS partner_id,
			COALESCE(SUM(amount), 0) AS total_earnings,
			COALESCE(SUM(gross_amount), 0) AS total_gross,
			COALESCE(SUM(amount) FILTER (WHERE split_timestamp >= $2), 0) AS month_earnings,
			COUNT(*) AS settlements,
			COUNT(*) FILTER (WHERE fallback) AS fallback_settlements,
			MAX(split_timestamp) AS last_settled_at
		FROM partner_revenue_logs
		WHERE partner_id = $1
	`, partnerID, monthStart)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) TopPartners(ctx context.Context, limit int) ([]*TopPartner, error) {
	var top []*TopPartner
	err := r.db.SelectContext(ctx, &top, `
		SELECT l.partner_id, p.name AS partner_name,
			SUM(l.amount) AS total_earnings, COUNT(*) AS settlements
		FROM partner_revenue_logs l
		JOIN partners p ON p.id = l.partner_id
		GROUP BY l.partner_id, p.name
		ORDER BY total_earnings DESC, l.partner_id
		LIMIT $1
	`, limit)
	return top, err
}
