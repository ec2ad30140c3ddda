package program

// CreateRequest for POST /programs
type CreateRequest struct {
	Name           string  `json:"name" validate:"required,min=2,max=200"`
	Description    string  `json:"description,omitempty" validate:"max=2000"`
	PricePerLesson float64 `json:"price_per_lesson" validate:"gte=0"`
}

// UpdateRequest for PATCH /programs/{id}
type UpdateRequest struct {
	Name           *string  `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Description    *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	PricePerLesson *float64 `json:"price_per_lesson,omitempty" validate:"omitempty,gte=0"`
	IsActive       *bool    `json:"is_active,omitempty"`
}
