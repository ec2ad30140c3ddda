package revenue

import "github.com/google/uuid"

type LogRequest struct {
	PartnerID         uuid.UUID  `json:"partner_id" validate:"required"`
	CampaignID        *uuid.UUID `json:"campaign_id"`
	TransactionID     uuid.UUID  `json:"transaction_id" validate:"required"`
	Amount            float64    `json:"amount" validate:"gte=0"`
	GrossAmount       float64    `json:"gross_amount" validate:"gte=0"`
	PartnerPercentage float64    `json:"partner_percentage" validate:"gte=0,lte=100"`
	Fallback          bool       `json:"fallback"`
}
