package campaign

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/sqooli/partner-api/internal/pkg/database"
)

// Status represents campaign lifecycle state
type Status string

const (
	StatusDraft   Status = "draft"
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
)

// BundledOffers is a lesson bundle sold at a fixed price
type BundledOffers struct {
	MinLessons int     `json:"min_lessons" validate:"gte=0"`
	TotalPrice float64 `json:"total_price" validate:"gte=0"`
}

// DiscountRule prices lessons bought through the campaign
type DiscountRule struct {
	PricePerLesson float64  `json:"price_per_lesson" validate:"gte=0"`
	MinAmount      *float64 `json:"min_amount,omitempty" validate:"omitempty,gte=0"`
}

// RevenueShare splits a transaction between partner and platform, in percent
type RevenueShare struct {
	PartnerPercentage float64 `json:"partner_percentage" validate:"gte=0,lte=100"`
	SqooliPercentage  float64 `json:"sqooli_percentage" validate:"gte=0,lte=100"`
}

// SumsToHundred reports whether both percentages add up to 100.
func (r RevenueShare) SumsToHundred() bool {
	return math.Abs(r.PartnerPercentage+r.SqooliPercentage-100) < 1e-9
}

// Campaign is a partner's promotion of one program under a promo code
type Campaign struct {
	ID                uuid.UUID                    `db:"id" json:"id"`
	PartnerID         uuid.UUID                    `db:"partner_id" json:"partner_id"`
	ProgramID         uuid.UUID                    `db:"program_id" json:"program_id"`
	Name              string                       `db:"name" json:"name"`
	PromoCode         string                       `db:"promo_code" json:"promo_code"`
	TargetSignups     int                          `db:"target_signups" json:"target_signups"`
	DailyTarget       int                          `db:"daily_target" json:"daily_target"`
	BundledOffers     database.JSON[BundledOffers] `db:"bundled_offers" json:"bundled_offers"`
	DiscountRule      database.JSON[DiscountRule]  `db:"discount_rule" json:"discount_rule"`
	RevenueProjection float64                      `db:"revenue_projection" json:"revenue_projection"`
	RevenueShare      database.JSON[RevenueShare]  `db:"revenue_share" json:"revenue_share"`
	WhatsappNumber    string                       `db:"whatsapp_number" json:"whatsapp_number"`
	StartDate         *time.Time                   `db:"start_date" json:"start_date,omitempty"`
	EndDate           *time.Time                   `db:"end_date" json:"end_date,omitempty"`
	Status            Status                       `db:"status" json:"status"`
	CreatedAt         time.Time                    `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time                    `db:"updated_at" json:"updated_at"`
}

// PromoCode is an additional upper-cased code bound to a campaign
type PromoCode struct {
	ID          uuid.UUID `db:"id" json:"id"`
	CampaignID  uuid.UUID `db:"campaign_id" json:"campaign_id"`
	Code        string    `db:"code" json:"code"`
	Description string    `db:"description" json:"description"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
