package wallet

import "github.com/google/uuid"

// PayoutDetails is the explicit set of payout fields a partner may change
type PayoutDetails struct {
	WithdrawalMethod  Method        `json:"withdrawal_method" validate:"required,withdrawal_method"`
	MpesaPhone        string        `json:"mpesa_phone" validate:"max=20"`
	BankName          string        `json:"bank_name" validate:"max=100"`
	BankAccountNumber string        `json:"bank_account_number" validate:"max=50"`
	PaybillNumber     string        `json:"paybill_number" validate:"max=20"`
	TillNumber        string        `json:"till_number" validate:"max=20"`
	AccountName       string        `json:"account_name" validate:"max=100"`
	Beneficiaries     []Beneficiary `json:"beneficiaries" validate:"omitempty,max=10,dive"`
}

type CreateRequest struct {
	PartnerID uuid.UUID `json:"partner_id"`
	Pin       string    `json:"pin" validate:"required,pin"`
	PayoutDetails
}

type CreditRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

type VerifyPinRequest struct {
	Pin string `json:"pin" validate:"required"`
}

type ChangePinRequest struct {
	CurrentPin string `json:"current_pin" validate:"required"`
	NewPin     string `json:"new_pin" validate:"required,pin"`
}

type LimitRequest struct {
	PartnerID      *uuid.UUID `json:"partner_id"`
	MinAmount      float64    `json:"min_amount" validate:"gte=0"`
	MaxAmount      float64    `json:"max_amount" validate:"gt=0"`
	DailyLimit     float64    `json:"daily_limit" validate:"gte=0"`
	MonthlyLimit   float64    `json:"monthly_limit" validate:"gte=0"`
	ProcessingDays int        `json:"processing_days" validate:"gte=0,lte=30"`
	IsActive       *bool      `json:"is_active"`
}

type UpdateLimitRequest struct {
	MinAmount      *float64 `json:"min_amount" validate:"omitempty,gte=0"`
	MaxAmount      *float64 `json:"max_amount" validate:"omitempty,gt=0"`
	DailyLimit     *float64 `json:"daily_limit" validate:"omitempty,gte=0"`
	MonthlyLimit   *float64 `json:"monthly_limit" validate:"omitempty,gte=0"`
	ProcessingDays *int     `json:"processing_days" validate:"omitempty,gte=0,lte=30"`
	IsActive       *bool    `json:"is_active"`
}

type CheckAmountRequest struct {
	PartnerID uuid.UUID `json:"partner_id"`
	Amount    float64   `json:"amount" validate:"required,gt=0"`
}
