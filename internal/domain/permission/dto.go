package permission

// CreateRequest for POST /permissions
type CreateRequest struct {
	Category    string `json:"category" validate:"required,permission_category"`
	Level       string `json:"level" validate:"required,permission_level"`
	Description string `json:"description" validate:"max=255"`
	IsDefault   bool   `json:"is_default"`
}
