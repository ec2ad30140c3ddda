package user

import "github.com/google/uuid"

// CreateRequest for POST /users
type CreateRequest struct {
	PartnerID     uuid.UUID    `json:"partner_id"`
	Name          string       `json:"name" validate:"required,min=2,max=100"`
	Email         string       `json:"email" validate:"required,email"`
	Role          string       `json:"role" validate:"required"`
	PermissionIDs *[]uuid.UUID `json:"permission_ids,omitempty"`
}

// UpdateProfileRequest for PATCH /users/{id}. Changing role never changes
// the permission set.
type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
	Role  *string `json:"role,omitempty" validate:"omitempty,min=2"`
}

// UpdatePermissionsRequest for PUT /users/{id}/permissions
type UpdatePermissionsRequest struct {
	PermissionIDs []uuid.UUID `json:"permission_ids"`
}

// SetActiveRequest for PATCH /users/{id}/active
type SetActiveRequest struct {
	IsActive bool `json:"is_active"`
}

// ChangePasswordRequest for POST /auth/password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}
