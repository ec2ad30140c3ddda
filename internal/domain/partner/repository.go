package partner

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sqooli/partner-api/internal/pkg/database"
)

// Repository defines partner data access interface
type Repository interface {
	Create(ctx context.Context, p *Partner) error
	GetByID(ctx context.Context, id uuid.UUID) (*Partner, error)
	GetByEmail(ctx context.Context, email string) (*Partner, error)
	List(ctx context.Context) ([]*Partner, error)
	Update(ctx context.Context, p *Partner) error
	SetStatus(ctx context.Context, id uuid.UUID, status Status) error
	ClearFirstLogin(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new partner repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const selectColumns = `
	SELECT id, name, email, phone, username, permission_ids, is_first_login, status, created_at, updated_at
	FROM partners`

func (r *repository) Create(ctx context.Context, p *Partner) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO partners (id, name, email, phone, username, permission_ids, is_first_login, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, p.ID, p.Name, p.Email, p.Phone, p.Username, p.PermissionIDs, p.IsFirstLogin, p.Status, p.CreatedAt, p.UpdatedAt)
	if _, ok := database.UniqueViolation(err); ok {
		return fmt.Errorf("%w: %w", ErrPartnerAlreadyExists, err)
	}
	return err
}

func (r *repository) get(ctx context.Context, where string, arg interface{}) (*Partner, error) {
	var p Partner
	err := r.db.GetContext(ctx, &p, selectColumns+` WHERE `+where, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Partner, error) {
	return r.get(ctx, `id = $1`, id)
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Partner, error) {
	return r.get(ctx, `email = $1`, email)
}

func (r *repository) List(ctx context.Context) ([]*Partner, error) {
	var partners []*Partner
	err := r.db.SelectContext(ctx, &partners, selectColumns+` ORDER BY created_at DESC`)
	return partners, err
}

func (r *repository) Update(ctx context.Context, p *Partner) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE partners SET name = $2, phone = $3, username = $4, updated_at = now() WHERE id = $1
	`, p.ID, p.Name, p.Phone, p.Username)
	return err
}

func (r *repository) SetStatus(ctx context.Context, id uuid.UUID, status Status) error {
	res, err := r.db.ExecContext(ctx, `UPDATE partners SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPartnerNotFound
	}
	return nil
}

func (r *repository) ClearFirstLogin(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE partners SET is_first_login = false, updated_at = now() WHERE id = $1 AND is_first_login
	`, id)
	return err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM partners WHERE id = $1`, id)
	return err
}
