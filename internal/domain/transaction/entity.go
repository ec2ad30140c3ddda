package transaction

import (
	"time"

	"github.com/google/uuid"
)

// StatusSuccess is the only status the revenue engine settles.
const StatusSuccess = "Success"

// Transaction is a confirmed M-Pesa payment attributed to a partner
type Transaction struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	PartnerID    uuid.UUID  `db:"partner_id" json:"partner_id"`
	StudentName  string     `db:"student_name" json:"student_name"`
	Phone        string     `db:"phone" json:"phone"`
	MpesaCode    string     `db:"mpesa_code" json:"mpesa_code"`
	Amount       float64    `db:"amount" json:"amount"`
	CampaignCode string     `db:"campaign_code" json:"campaign_code"`
	Status       string     `db:"status" json:"status"`
	VerifiedAt   *time.Time `db:"verified_at" json:"verified_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// IsSuccess reports whether the payment may be settled.
func (t *Transaction) IsSuccess() bool {
	return t.Status == StatusSuccess
}

// Filter narrows ListByPartner. Zero fields are ignored.
type Filter struct {
	Status string
	From   *time.Time
	To     *time.Time
}
