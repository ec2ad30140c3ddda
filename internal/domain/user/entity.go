package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/sqooli/partner-api/internal/pkg/database"
)

// User belongs to exactly one partner. PermissionIDs is the only source of
// authorization; Role is a label and deletion guard.
type User struct {
	ID            uuid.UUID      `db:"id" json:"id"`
	PartnerID     uuid.UUID      `db:"partner_id" json:"partner_id"`
	Name          string         `db:"name" json:"name"`
	Email         string         `db:"email" json:"email"`
	PasswordHash  string         `db:"password_hash" json:"-"`
	Role          string         `db:"role" json:"role"`
	PermissionIDs database.UUIDs `db:"permission_ids" json:"permission_ids"`
	Extension     string         `db:"extension" json:"extension"`
	IsActive      bool           `db:"is_active" json:"is_active"`
	IsActivated   bool           `db:"is_activated" json:"is_activated"`
	LastLoginAt   *time.Time     `db:"last_login_at" json:"last_login_at,omitempty"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

// Credentials are generated secrets returned exactly once.
type Credentials struct {
	Email     string `json:"email"`
	Extension string `json:"extension"`
	Password  string `json:"password"`
}

// Created is the result of user creation.
type Created struct {
	User        *User        `json:"user"`
	Credentials *Credentials `json:"credentials"`
}
