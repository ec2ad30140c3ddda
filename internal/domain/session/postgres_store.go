package session

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// PostgresStore keeps sessions in the sessions table.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (p *PostgresStore) Create(ctx context.Context, s *Session) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO sessions (id, token_hash, user_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
	`, s.ID, s.TokenHash, s.UserID, s.CreatedAt, s.ExpiresAt)
	return err
}

func (p *PostgresStore) GetByTokenHash(ctx context.Context, hash string) (*Session, error) {
	var s Session
	err := p.db.GetContext(ctx, &s, `
		SELECT id, token_hash, user_id, created_at, expires_at FROM sessions WHERE token_hash = $1
	`, hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (p *PostgresStore) Delete(ctx context.Context, hash string) (bool, error) {
	res, err := p.db.ExecContext(ctx, `DELETE FROM sessions WHERE token_hash = $1`, hash)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (p *PostgresStore) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	return err
}
