package user

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

// Repository defines user data access interface
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByExtension(ctx context.Context, extension string) (*User, error)
	ListByPartner(ctx context.Context, partnerID uuid.UUID) ([]*User, error)
	ListActiveIDsByPartner(ctx context.Context, partnerID uuid.UUID) ([]uuid.UUID, error)
	UpdateProfile(ctx context.Context, u *User) error
	UpdatePermissions(ctx context.Context, id uuid.UUID, ids database.UUIDs) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string, activated bool) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	CountByRole(ctx context.Context, roleName string) (int, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new user repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const selectColumns = `
	SELECT id, partner_id, name, email, password_hash, role, permission_ids, extension,
		is_active, is_activated, last_login_at, created_at, updated_at
	FROM users`

func (r *repository) Create(ctx context.Context, u *User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, partner_id, name, email, password_hash, role, permission_ids, extension,
			is_active, is_activated, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, u.ID, u.PartnerID, u.Name, u.Email, u.PasswordHash, u.Role, u.PermissionIDs, u.Extension,
		u.IsActive, u.IsActivated, u.CreatedAt, u.UpdatedAt)
	return mapWriteError(err)
}

func (r *repository) get(ctx context.Context, where string, arg interface{}) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u, selectColumns+` WHERE `+where, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return r.get(ctx, `id = $1`, id)
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.get(ctx, `email = $1`, email)
}

func (r *repository) GetByExtension(ctx context.Context, extension string) (*User, error) {
	return r.get(ctx, `extension = $1`, extension)
}

func (r *repository) ListByPartner(ctx context.Context, partnerID uuid.UUID) ([]*User, error) {
	var users []*User
	err := r.db.SelectContext(ctx, &users, selectColumns+` WHERE partner_id = $1 ORDER BY created_at`, partnerID)
	return users, err
}

func (r *repository) ListActiveIDsByPartner(ctx context.Context, partnerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.SelectContext(ctx, &ids, `SELECT id FROM users WHERE partner_id = $1 AND is_active = true`, partnerID)
	return ids, err
}

func (r *repository) UpdateProfile(ctx context.Context, u *User) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET name = $2, email = $3, role = $4, updated_at = now() WHERE id = $1
	`, u.ID, u.Name, u.Email, u.Role)
	return mapWriteError(err)
}

func (r *repository) UpdatePermissions(ctx context.Context, id uuid.UUID, ids database.UUIDs) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET permission_ids = $2, updated_at = now() WHERE id = $1`, id, ids)
	return err
}

func (r *repository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET is_active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *repository) UpdatePassword(ctx context.Context, id uuid.UUID, hash string, activated bool) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET password_hash = $2, is_activated = $3, updated_at = now() WHERE id = $1
	`, id, hash, activated)
	return err
}

func (r *repository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET last_login_at = $2 WHERE id = $1`, id, at)
	return err
}

func (r *repository) CountByRole(ctx context.Context, roleName string) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users WHERE role = $1`, roleName)
	return n, err
}

func mapWriteError(err error) error {
	constraint, ok := database.UniqueViolation(err)
	if !ok {
		return err
	}
	if constraint == "users_extension_key" {
		return fmt.Errorf("%w: %w", errExtensionTaken, err)
	}
	return fmt.Errorf("%w: %w", ErrUserAlreadyExists, err)
}
