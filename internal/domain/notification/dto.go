package notification

import "github.com/google/uuid"

type CreateRequest struct {
	PartnerID uuid.UUID  `json:"partner_id" validate:"required"`
	UserID    *uuid.UUID `json:"user_id"`
	Type      Type       `json:"type" validate:"required,max=50"`
	Title     string     `json:"title" validate:"required,max=200"`
	Body      string     `json:"body" validate:"max=2000"`
	Data      *Data      `json:"data"`
}

// UnreadCountResponse for unread count endpoint
type UnreadCountResponse struct {
	UnreadCount int `json:"unread_count"`
}
