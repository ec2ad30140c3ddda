package program

import (
	"time"

	"github.com/google/uuid"
)

// Program is a course students enroll in through campaigns
type Program struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Description    string    `db:"description" json:"description"`
	PricePerLesson float64   `db:"price_per_lesson" json:"price_per_lesson"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
