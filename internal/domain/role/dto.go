package role

import "github.com/google/uuid"

// CreateRequest for POST /roles
type CreateRequest struct {
	Name          string      `json:"name" validate:"required,min=2,max=50"`
	DisplayName   string      `json:"display_name" validate:"required,max=100"`
	Description   string      `json:"description" validate:"max=500"`
	PermissionIDs []uuid.UUID `json:"permission_ids"`
}

// UpdateRequest for PATCH /roles/{id}. Nil fields are left unchanged.
type UpdateRequest struct {
	DisplayName   *string      `json:"display_name,omitempty" validate:"omitempty,max=100"`
	Description   *string      `json:"description,omitempty" validate:"omitempty,max=500"`
	IsActive      *bool        `json:"is_active,omitempty"`
	PermissionIDs *[]uuid.UUID `json:"permission_ids,omitempty"`
}

// AssignPermissionsRequest for PUT /roles/{id}/permissions
type AssignPermissionsRequest struct {
	PermissionIDs []uuid.UUID `json:"permission_ids"`
}

// ListFilter narrows List results.
type ListFilter struct {
	ActiveOnly bool
	SystemOnly *bool
}

// DeleteResult for DELETE /roles/{id}
type DeleteResult struct {
	Message string `json:"message"`
}
