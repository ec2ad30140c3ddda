package permission

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sqooli/partner-api/internal/pkg/database"
)

// Repository defines permission data access interface
type Repository interface {
	Count(ctx context.Context) (int, error)
	InsertMany(ctx context.Context, perms []*Permission) (int, error)
	Create(ctx context.Context, p *Permission) error
	List(ctx context.Context) ([]*Permission, error)
	ListDefaults(ctx context.Context) ([]*Permission, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Permission, error)
	GetByKey(ctx context.Context, key string) (*Permission, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*Permission, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates permission repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const selectColumns = `SELECT id, key, category, level, description, is_default, created_at FROM permissions`

func (r *repository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM permissions`)
	return n, err
}

// InsertMany inserts the given rows in one transaction, skipping keys that
// already exist, and returns how many rows were created.
func (r *repository) InsertMany(ctx context.Context, perms []*Permission) (int, error) {
	created := 0
	err := database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for _, p := range perms {
			if p.ID == uuid.Nil {
				p.ID = uuid.New()
			}
			res, err := tx.ExecContext(ctx, `
				INSERT INTO permissions (id, key, category, level, description, is_default)
				VALUES ($1, $2, $3, $4, $5, $6)
				ON CONFLICT (key) DO NOTHING
			`, p.ID, p.Key, p.Category, p.Level, p.Description, p.IsDefault)
			if err != nil {
				return err
			}
			if n, _ := res.RowsAffected(); n > 0 {
				created++
			}
		}
		return nil
	})
	return created, err
}

func (r *repository) Create(ctx context.Context, p *Permission) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO permissions (id, key, category, level, description, is_default)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, p.ID, p.Key, p.Category, p.Level, p.Description, p.IsDefault)
	if _, ok := database.UniqueViolation(err); ok {
		return fmt.Errorf("%w: %w", ErrPermissionKeyTaken, err)
	}
	return err
}

func (r *repository) List(ctx context.Context) ([]*Permission, error) {
	var perms []*Permission
	err := r.db.SelectContext(ctx, &perms, selectColumns+` ORDER BY category, key`)
	return perms, err
}

func (r *repository) ListDefaults(ctx context.Context) ([]*Permission, error) {
	var perms []*Permission
	err := r.db.SelectContext(ctx, &perms, selectColumns+` WHERE is_default = true ORDER BY key`)
	return perms, err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Permission, error) {
	var p Permission
	err := r.db.GetContext(ctx, &p, selectColumns+` WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) GetByKey(ctx context.Context, key string) (*Permission, error) {
	var p Permission
	err := r.db.GetContext(ctx, &p, selectColumns+` WHERE key = $1`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*Permission, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var perms []*Permission
	err := r.db.SelectContext(ctx, &perms, selectColumns+` WHERE id = ANY($1) ORDER BY key`, pq.Array(ids))
	return perms, err
}
