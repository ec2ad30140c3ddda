package wallet

import (
	"time"

	"github.com/google/uuid"

	"github.com/sqooli/partner-api/internal/pkg/database"
)

// Method is how a partner is paid out
type Method string

const (
	MethodMpesa   Method = "mpesa"
	MethodBank    Method = "bank"
	MethodPaybill Method = "paybill"
	MethodTill    Method = "till"
)

// Beneficiary is a named payout recipient
type Beneficiary struct {
	Name  string `json:"name" validate:"required,max=100"`
	Phone string `json:"phone" validate:"omitempty,max=20"`
	Note  string `json:"note,omitempty" validate:"max=200"`
}

// Wallet holds a partner's accumulated earnings. Balance and
// lifetime earnings move together on every credit.
type Wallet struct {
	ID                uuid.UUID                    `db:"id" json:"id"`
	PartnerID         uuid.UUID                    `db:"partner_id" json:"partner_id"`
	AccountNumber     string                       `db:"account_number" json:"account_number"`
	Balance           float64                      `db:"balance" json:"balance"`
	PendingBalance    float64                      `db:"pending_balance" json:"pending_balance"`
	LifetimeEarnings  float64                      `db:"lifetime_earnings" json:"lifetime_earnings"`
	WithdrawalMethod  Method                       `db:"withdrawal_method" json:"withdrawal_method"`
	MpesaPhone        string                       `db:"mpesa_phone" json:"mpesa_phone"`
	BankName          string                       `db:"bank_name" json:"bank_name"`
	BankAccountNumber string                       `db:"bank_account_number" json:"bank_account_number"`
	PaybillNumber     string                       `db:"paybill_number" json:"paybill_number"`
	TillNumber        string                       `db:"till_number" json:"till_number"`
	AccountName       string                       `db:"account_name" json:"account_name"`
	Beneficiaries     database.JSON[[]Beneficiary] `db:"beneficiaries" json:"beneficiaries"`
	PinHash           string                       `db:"pin_hash" json:"-"`
	SetupCompletedAt  *time.Time                   `db:"setup_completed_at" json:"setup_completed_at,omitempty"`
	CreatedAt         time.Time                    `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time                    `db:"updated_at" json:"updated_at"`
}

// Limit bounds single withdrawals. A nil PartnerID is the platform-wide default.
type Limit struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	PartnerID      *uuid.UUID `db:"partner_id" json:"partner_id,omitempty"`
	MinAmount      float64    `db:"min_amount" json:"min_amount"`
	MaxAmount      float64    `db:"max_amount" json:"max_amount"`
	DailyLimit     float64    `db:"daily_limit" json:"daily_limit"`
	MonthlyLimit   float64    `db:"monthly_limit" json:"monthly_limit"`
	ProcessingDays int        `db:"processing_days" json:"processing_days"`
	IsActive       bool       `db:"is_active" json:"is_active"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// PinCheck is the soft result of a PIN verification
type PinCheck struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// AmountCheck is the soft result of a withdrawal amount check
type AmountCheck struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
	Limit   *Limit `json:"limit,omitempty"`
}
