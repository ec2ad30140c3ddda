package database

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// PoolConfig tunes the Postgres connection pool. Zero values fall back to
// the defaults used in production.
type PoolConfig struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
	MaxIdleTime time.Duration
}

func (c PoolConfig) withDefaults() PoolConfig {
	if c.MaxOpen <= 0 {
		c.MaxOpen = 25
	}
	if c.MaxIdle <= 0 {
		c.MaxIdle = c.MaxOpen / 2
	}
	if c.MaxLifetime <= 0 {
		c.MaxLifetime = 5 * time.Minute
	}
	if c.MaxIdleTime <= 0 {
		c.MaxIdleTime = time.Minute
	}
	return c
}

// NewPostgres opens a pool and pings it within ctx.
func NewPostgres(ctx context.Context, databaseURL string, pool PoolConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}

	pool = pool.withDefaults()
	db.SetMaxOpenConns(pool.MaxOpen)
	db.SetMaxIdleConns(pool.MaxIdle)
	db.SetConnMaxLifetime(pool.MaxLifetime)
	db.SetConnMaxIdleTime(pool.MaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Info().Int("max_open", pool.MaxOpen).Msg("connected to postgres")
	return db, nil
}

// ClosePostgres closes the pool, logging any error.
func ClosePostgres(db *sqlx.DB) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		log.Error().Err(err).Msg("closing postgres")
	}
}
