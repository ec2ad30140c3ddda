package notification

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines notification data access
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*Notification, error)
	ListByPartner(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*Notification, error)
	CountUnread(ctx context.Context, partnerID uuid.UUID) (int, error)
	UnreadIDs(ctx context.Context, partnerID uuid.UUID) ([]uuid.UUID, error)
	MarkRead(ctx context.Context, id uuid.UUID, at time.Time) error
	DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates notification repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (id, partner_id, user_id, type, title, body, data, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, n.ID, n.PartnerID, n.UserID, n.Type, n.Title, n.Body, n.Data, n.IsRead, n.CreatedAt)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Notification, error) {
	var n Notification
	err := r.db.GetContext(ctx, &n, `SELECT * FROM notifications WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *repository) ListByPartner(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*Notification, error) {
	var list []*Notification
	err := r.db.SelectContext(ctx, &list, `
		SELECT * FROM notifications
		WHERE partner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, partnerID, limit, offset)
	return list, err
}

func (r *repository) CountUnread(ctx context.Context, partnerID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM notifications WHERE partner_id = $1 AND NOT is_read`, partnerID)
	return count, err
}

func (r *repository) UnreadIDs(ctx context.Context, partnerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.SelectContext(ctx, &ids, `
		SELECT id FROM notifications WHERE partner_id = $1 AND NOT is_read ORDER BY created_at
	`, partnerID)
	return ids, err
}

// MarkRead keeps the first read_at of an already read notification.
func (r *repository) MarkRead(ctx context.Context, id uuid.UUID, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE notifications SET is_read = true, read_at = COALESCE(read_at, $2) WHERE id = $1
	`, id, at)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *repository) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE is_read AND created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
