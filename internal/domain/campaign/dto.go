package campaign

import (
	"time"

	"github.com/google/uuid"
)

// CreateRequest for POST /campaigns
type CreateRequest struct {
	PartnerID         uuid.UUID     `json:"partner_id"`
	ProgramID         uuid.UUID     `json:"program_id" validate:"required"`
	Name              string        `json:"name" validate:"required,min=2,max=200"`
	PromoCode         string        `json:"promo_code" validate:"required,min=3,max=50"`
	TargetSignups     int           `json:"target_signups" validate:"gte=0"`
	DailyTarget       int           `json:"daily_target" validate:"gte=0"`
	BundledOffers     BundledOffers `json:"bundled_offers"`
	DiscountRule      DiscountRule  `json:"discount_rule"`
	RevenueProjection float64       `json:"revenue_projection" validate:"gte=0"`
	RevenueShare      RevenueShare  `json:"revenue_share"`
	WhatsappNumber    string        `json:"whatsapp_number,omitempty" validate:"omitempty,max=20"`
	StartDate         *time.Time    `json:"start_date,omitempty"`
	EndDate           *time.Time    `json:"end_date,omitempty"`
	Status            Status        `json:"status,omitempty" validate:"omitempty,campaign_status"`
}

// UpdateRequest for PATCH /campaigns/{id}
type UpdateRequest struct {
	Name              *string        `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	PromoCode         *string        `json:"promo_code,omitempty" validate:"omitempty,min=3,max=50"`
	TargetSignups     *int           `json:"target_signups,omitempty" validate:"omitempty,gte=0"`
	DailyTarget       *int           `json:"daily_target,omitempty" validate:"omitempty,gte=0"`
	BundledOffers     *BundledOffers `json:"bundled_offers,omitempty"`
	DiscountRule      *DiscountRule  `json:"discount_rule,omitempty"`
	RevenueProjection *float64       `json:"revenue_projection,omitempty" validate:"omitempty,gte=0"`
	RevenueShare      *RevenueShare  `json:"revenue_share,omitempty"`
	WhatsappNumber    *string        `json:"whatsapp_number,omitempty" validate:"omitempty,max=20"`
	StartDate         *time.Time     `json:"start_date,omitempty"`
	EndDate           *time.Time     `json:"end_date,omitempty"`
}

// SetStatusRequest for PATCH /campaigns/{id}/status
type SetStatusRequest struct {
	Status Status `json:"status" validate:"required,campaign_status"`
}

// CreatePromoCodeRequest for POST /campaigns/{id}/promo-codes
type CreatePromoCodeRequest struct {
	Code        string `json:"code" validate:"required,min=3,max=50"`
	Description string `json:"description,omitempty" validate:"max=500"`
}

// UpdatePromoCodeRequest for PATCH /promo-codes/{id}
type UpdatePromoCodeRequest struct {
	Code        *string `json:"code,omitempty" validate:"omitempty,min=3,max=50"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	IsActive    *bool   `json:"is_active,omitempty"`
}
