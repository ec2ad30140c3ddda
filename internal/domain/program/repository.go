package program

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines program data access interface
type Repository interface {
	Create(ctx context.Context, p *Program) error
	GetByID(ctx context.Context, id uuid.UUID) (*Program, error)
	List(ctx context.Context, activeOnly bool) ([]*Program, error)
	Update(ctx context.Context, p *Program) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new program repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Program) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO programs (id, name, description, price_per_lesson, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, p.ID, p.Name, p.Description, p.PricePerLesson, p.IsActive, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Program, error) {
	var p Program
	err := r.db.GetContext(ctx, &p, `SELECT * FROM programs WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context, activeOnly bool) ([]*Program, error) {
	var programs []*Program
	err := r.db.SelectContext(ctx, &programs, `
		SELECT * FROM programs WHERE ($1 = false OR is_active) ORDER BY name
	`, activeOnly)
	return programs, err
}

func (r *repository) Update(ctx context.Context, p *Program) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE programs SET name = $2, description = $3, price_per_lesson = $4, is_active = $5, updated_at = now()
		WHERE id = $1
	`, p.ID, p.Name, p.Description, p.PricePerLesson, p.IsActive)
	return err
}
