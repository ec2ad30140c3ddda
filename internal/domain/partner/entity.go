package partner

import (
	"time"

	"github.com/google/uuid"

	"github.com/sqooli/partner-api/internal/pkg/database"
)

// Status represents whether a partner may operate
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// SystemEmail identifies the synthetic partner that hosts platform
// administrators.
const SystemEmail = "system@partners.internal"

// Partner is a tenant: a school, agent or affiliate earning revenue share
type Partner struct {
	ID            uuid.UUID      `db:"id" json:"id"`
	Name          string         `db:"name" json:"name"`
	Email         string         `db:"email" json:"email"`
	Phone         string         `db:"phone" json:"phone,omitempty"`
	Username      string         `db:"username" json:"username,omitempty"`
	PermissionIDs database.UUIDs `db:"permission_ids" json:"permission_ids"`
	IsFirstLogin  bool           `db:"is_first_login" json:"is_first_login"`
	Status        Status         `db:"status" json:"status"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

// IsActive returns true if partner is active
func (p *Partner) IsActive() bool {
	return p.Status == StatusActive
}

// IsSystem reports whether p is the synthetic platform partner.
func (p *Partner) IsSystem() bool {
	return p.Email == SystemEmail
}
