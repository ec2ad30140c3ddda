package revenue

import (
	"time"

	"github.com/google/uuid"

	"github.com/sqooli/partner-api/internal/domain/enrollment"
)

// DefaultPartnerPercentage is the partner share applied when a payment
// matches no campaign.
const DefaultPartnerPercentage = 20.0

// Log is one append-only revenue attribution row
type Log struct {
	ID                uuid.UUID  `db:"id" json:"id"`
	PartnerID         uuid.UUID  `db:"partner_id" json:"partner_id"`
	CampaignID        *uuid.UUID `db:"campaign_id" json:"campaign_id,omitempty"`
	TransactionID     uuid.UUID  `db:"transaction_id" json:"transaction_id"`
	Amount            float64    `db:"amount" json:"amount"`
	GrossAmount       float64    `db:"gross_amount" json:"gross_amount"`
	PartnerPercentage float64    `db:"partner_percentage" json:"partner_percentage"`
	Fallback          bool       `db:"fallback" json:"fallback"`
	SplitTimestamp    time.Time  `db:"split_timestamp" json:"split_timestamp"`
}

// Split divides a payment between partner and platform
type Split struct {
	Gross             float64    `json:"gross"`
	PartnerShare      float64    `json:"partner_share"`
	PlatformShare     float64    `json:"platform_share"`
	PartnerPercentage float64    `json:"partner_percentage"`
	CampaignID        *uuid.UUID `json:"campaign_id,omitempty"`
	Fallback          bool       `json:"fallback"`
}

// DailyTotal is one day of settled payments as stored
type DailyTotal struct {
	Day          string  `db:"day"`
	Earnings     float64 `db:"earnings"`
	Gross        float64 `db:"gross"`
	Transactions int     `db:"transactions"`
}

// TimelineEntry is one day of a partner's earnings timeline
type TimelineEntry struct {
	Date         string  `json:"date"`
	Amount       float64 `json:"amount"`
	Gross        float64 `json:"gross"`
	Transactions int     `json:"transactions"`
}

// Summary totals a partner's revenue log
type Summary struct {
	PartnerID           uuid.UUID  `db:"partner_id" json:"partner_id"`
	TotalEarnings       float64    `db:"total_earnings" json:"total_earnings"`
	TotalGross          float64    `db:"total_gross" json:"total_gross"`
	MonthEarnings       float64    `db:"month_earnings" json:"month_earnings"`
	Settlements         int        `db:"settlements" json:"settlements"`
	FallbackSettlements int        `db:"fallback_settlements" json:"fallback_settlements"`
	LastSettledAt       *time.Time `db:"last_settled_at" json:"last_settled_at,omitempty"`
}

// TopPartner is one row of the earnings leaderboard
type TopPartner struct {
	PartnerID     uuid.UUID `db:"partner_id" json:"partner_id"`
	PartnerName   string    `db:"partner_name" json:"partner_name"`
	TotalEarnings float64   `db:"total_earnings" json:"total_earnings"`
	Settlements   int       `db:"settlements" json:"settlements"`
}

// Settlement is the outcome of settling one payment
type Settlement struct {
	TransactionID  uuid.UUID              `json:"transaction_id"`
	Split          Split                  `json:"split"`
	Log            *Log                   `json:"revenue_log"`
	Enrollment     *enrollment.Enrollment `json:"enrollment"`
	AlreadySettled bool                   `json:"already_settled"`
}

// Plan is everything a settlement writes in one transaction
type Plan struct {
	Log        *Log
	Enrollment *enrollment.Enrollment
	VerifiedAt time.Time
}
