package permission

import (
	"time"

	"github.com/google/uuid"

	"github.com/sqooli/partner-api/internal/pkg/access"
)

// Permission is an atomic capability token of the form category.level.
type Permission struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	Key         string          `db:"key" json:"key"`
	Category    access.Category `db:"category" json:"category"`
	Level       access.Level    `db:"level" json:"level"`
	Description string          `db:"description" json:"description"`
	IsDefault   bool            `db:"is_default" json:"is_default"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// Keys returns the keys of perms in order.
func Keys(perms []*Permission) []string {
	keys := make([]string, 0, len(perms))
	for _, p := range perms {
		keys = append(keys, p.Key)
	}
	return keys
}

// IDs returns the ids of perms in order.
func IDs(perms []*Permission) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(perms))
	for _, p := range perms {
		ids = append(ids, p.ID)
	}
	return ids
}
