package audit

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Repository defines audit data access interface
type Repository interface {
	Create(ctx context.Context, e *Entry) error
	List(ctx context.Context, f Filter) ([]*Entry, int, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates audit repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, e *Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO audit_logs (id, actor_id, partner_id, action, entity_type, entity_id, old_value, new_value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, e.ID, e.ActorID, e.PartnerID, e.Action, e.EntityType, e.EntityID, nullJSON(e.OldValue), nullJSON(e.NewValue), e.CreatedAt)
	return err
}

func (r *repository) List(ctx context.Context, f Filter) ([]*Entry, int, error) {
	var where []string
	var args []interface{}
	add := func(cond string, v interface{}) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.PartnerID != nil {
		add("partner_id = $%d", *f.PartnerID)
	}
	if f.EntityType != "" {
		add("entity_type = $%d", f.EntityType)
	}
	if f.EntityID != nil {
		add("entity_id = $%d", *f.EntityID)
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM audit_logs`+clause, args...); err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	args = append(args, limit, f.Offset)
	query := fmt.Sprintf(`
		SELECT id, actor_id, partner_id, action, entity_type, entity_id, old_value, new_value, created_at
		FROM audit_logs%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, clause, len(args)-1, len(args))

	var entries []*Entry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func nullJSON(b []byte) interface{} {
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	return string(b)
}
