package enrollment

import "github.com/google/uuid"

type CreateRequest struct {
	ProgramID     uuid.UUID  `json:"program_id" validate:"required"`
	CampaignID    *uuid.UUID `json:"campaign_id"`
	TransactionID *uuid.UUID `json:"transaction_id"`
	RedeemCode    string     `json:"redeem_code" validate:"omitempty,min=4,max=32"`
	Status        Status     `json:"status" validate:"omitempty,enrollment_status"`
	Meta          *Meta      `json:"meta"`
}

type UpdateStatusRequest struct {
	Status Status `json:"status" validate:"required,enrollment_status"`
}
