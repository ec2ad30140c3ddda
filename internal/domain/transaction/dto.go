package transaction

import "github.com/google/uuid"

// RecordRequest for POST /transactions
type RecordRequest struct {
	PartnerID    uuid.UUID `json:"partner_id" validate:"required"`
	StudentName  string    `json:"student_name" validate:"required,min=2,max=200"`
	Phone        string    `json:"phone,omitempty" validate:"omitempty,max=20"`
	MpesaCode    string    `json:"mpesa_code" validate:"required,min=6,max=20"`
	Amount       float64   `json:"amount" validate:"gt=0"`
	CampaignCode string    `json:"campaign_code,omitempty" validate:"max=50"`
	Status       string    `json:"status" validate:"required,max=30"`
}

// UpdateStatusRequest for PATCH /transactions/{id}/status
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,max=30"`
}
