package notification

import (
	"time"

	"github.com/google/uuid"

	"github.com/sqooli/partner-api/internal/pkg/database"
)

// Type represents notification type
type Type string

const (
	TypeRevenueSettled Type = "revenue_settled" // Partner: a payment was attributed
	TypeWalletCredited Type = "wallet_credited" // Partner: manual wallet credit
	TypeSystem         Type = "system"          // Partner: operator notice
)

// Notification is an in-app message addressed to a partner, optionally
// to one of its users
type Notification struct {
	ID        uuid.UUID           `db:"id" json:"id"`
	PartnerID uuid.UUID           `db:"partner_id" json:"partner_id"`
	UserID    *uuid.UUID          `db:"user_id" json:"user_id,omitempty"`
	Type      Type                `db:"type" json:"type"`
	Title     string              `db:"title" json:"title"`
	Body      string              `db:"body" json:"body"`
	Data      database.JSON[Data] `db:"data" json:"data"`
	IsRead    bool                `db:"is_read" json:"is_read"`
	ReadAt    *time.Time          `db:"read_at" json:"read_at,omitempty"`
	CreatedAt time.Time           `db:"created_at" json:"created_at"`
}

// Data links a notification to the entities it is about
type Data struct {
	TransactionID *uuid.UUID `json:"transaction_id,omitempty"`
	CampaignID    *uuid.UUID `json:"campaign_id,omitempty"`
	EnrollmentID  *uuid.UUID `json:"enrollment_id,omitempty"`
	Amount        *float64   `json:"amount,omitempty"`
}
