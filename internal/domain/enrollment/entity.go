package enrollment

import (
	"time"

	"github.com/google/uuid"

	"github.com/sqooli/partner-api/internal/pkg/database"
)

// Status represents enrollment redemption state
type Status string

const (
	StatusPending  Status = "pending"
	StatusRedeemed Status = "redeemed"
	StatusExpired  Status = "expired"
)

// Meta carries payment details captured at enrollment time
type Meta struct {
	Phone         string  `json:"phone,omitempty"`
	PaymentAmount float64 `json:"payment_amount,omitempty"`
}

// Enrollment links a student's payment to program access.
// ProgramID and CampaignID are nil for payments that matched no campaign.
type Enrollment struct {
	ID            uuid.UUID           `db:"id" json:"id"`
	ProgramID     *uuid.UUID          `db:"program_id" json:"program_id,omitempty"`
	CampaignID    *uuid.UUID          `db:"campaign_id" json:"campaign_id,omitempty"`
	RedeemCode    string              `db:"redeem_code" json:"redeem_code"`
	TransactionID *uuid.UUID          `db:"transaction_id" json:"transaction_id,omitempty"`
	Status        Status              `db:"status" json:"status"`
	Meta          database.JSON[Meta] `db:"meta" json:"meta"`
	CreatedAt     time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time           `db:"updated_at" json:"updated_at"`
}

// CanMoveTo reports whether status may change to next. Only pending
// enrollments move, and only forward.
func (e *Enrollment) CanMoveTo(next Status) bool {
	return e.Status == StatusPending && (next == StatusRedeemed || next == StatusExpired)
}
