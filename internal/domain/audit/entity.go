package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Entry is an append-only record of a mutation.
type Entry struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	ActorID    uuid.NullUUID   `db:"actor_id" json:"actor_id,omitempty"`
	PartnerID  uuid.NullUUID   `db:"partner_id" json:"partner_id,omitempty"`
	Action     string          `db:"action" json:"action"`
	EntityType string          `db:"entity_type" json:"entity_type"`
	EntityID   uuid.NullUUID   `db:"entity_id" json:"entity_id,omitempty"`
	OldValue   json.RawMessage `db:"old_value" json:"old_value,omitempty"`
	NewValue   json.RawMessage `db:"new_value" json:"new_value,omitempty"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}

// Filter narrows ListAudit results.
type Filter struct {
	PartnerID  *uuid.UUID
	EntityType string
	EntityID   *uuid.UUID
	Limit      int
	Offset     int
}
