package partner

import (
	"github.com/google/uuid"

	"github.com/sqooli/partner-api/internal/domain/user"
	"github.com/sqooli/partner-api/internal/pkg/batch"
)

// CreateRequest for POST /partners. The admin fields describe the first
// user provisioned for the partner; they default to the partner's own.
type CreateRequest struct {
	Name          string       `json:"name" validate:"required,min=2,max=255"`
	Email         string       `json:"email" validate:"required,email"`
	Phone         string       `json:"phone,omitempty" validate:"omitempty,max=20"`
	Username      string       `json:"username,omitempty" validate:"omitempty,max=100"`
	PermissionIDs *[]uuid.UUID `json:"permission_ids,omitempty"`
	AdminName     string       `json:"admin_name,omitempty" validate:"omitempty,min=2,max=100"`
	AdminEmail    string       `json:"admin_email,omitempty" validate:"omitempty,email"`
}

// UpdateRequest for PATCH /partners/{id}
type UpdateRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Username *string `json:"username,omitempty" validate:"omitempty,max=100"`
}

// SetStatusRequest for PATCH /partners/{id}/status
type SetStatusRequest struct {
	Status Status `json:"status" validate:"required,partner_status"`
}

// CreateResponse carries the admin credentials, shown exactly once.
type CreateResponse struct {
	Partner *Partner          `json:"partner"`
	Admin   *user.User        `json:"admin"`
	Login   *user.Credentials `json:"credentials"`
}

// StatusResponse reports the per-user outcome of a status change.
type StatusResponse struct {
	Partner *Partner      `json:"partner"`
	Users   *batch.Result `json:"users,omitempty"`
}
