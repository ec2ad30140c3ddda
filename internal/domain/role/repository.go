package role

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sqooli/partner-api/internal/pkg/database"
)

// Repository defines role data access interface
type Repository interface {
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, r *Role) error
	GetByID(ctx context.Context, id uuid.UUID) (*Role, error)
	GetByName(ctx context.Context, name string) (*Role, error)
	List(ctx context.Context, f ListFilter) ([]*Role, error)
	Update(ctx context.Context, r *Role) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates role repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const selectColumns = `
	SELECT id, name, display_name, description, permission_ids, is_system_role, is_active, created_at, updated_at
	FROM roles`

func (r *repository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM roles`)
	return n, err
}

func (r *repository) Create(ctx context.Context, role *Role) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO roles (id, name, display_name, description, permission_ids, is_system_role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, role.ID, role.Name, role.DisplayName, role.Description, role.PermissionIDs,
		role.IsSystemRole, role.IsActive, role.CreatedAt, role.UpdatedAt)
	if _, ok := database.UniqueViolation(err); ok {
		return fmt.Errorf("%w: %w", ErrRoleNameTaken, err)
	}
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Role, error) {
	var role Role
	err := r.db.GetContext(ctx, &role, selectColumns+` WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *repository) GetByName(ctx context.Context, name string) (*Role, error) {
	var role Role
	err := r.db.GetContext(ctx, &role, selectColumns+` WHERE name = $1`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *repository) List(ctx context.Context, f ListFilter) ([]*Role, error) {
	query := selectColumns + ` WHERE ($1 = false OR is_active = true) AND ($2::boolean IS NULL OR is_system_role = $2)
		ORDER BY is_system_role DESC, name`
	var roles []*Role
	err := r.db.SelectContext(ctx, &roles, query, f.ActiveOnly, f.SystemOnly)
	return roles, err
}

func (r *repository) Update(ctx context.Context, role *Role) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE roles
		SET display_name = $2, description = $3, permission_ids = $4, is_active = $5, updated_at = $6
		WHERE id = $1
	`, role.ID, role.DisplayName, role.Description, role.PermissionIDs, role.IsActive, role.UpdatedAt)
	return err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM roles WHERE id = $1`, id)
	return err
}
