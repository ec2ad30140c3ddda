package role

import "github.com/sqooli/partner-api/internal/pkg/apperror"

var (
	ErrRoleNotFound        = apperror.New(apperror.KindNotFound, "role not found")
	ErrRoleNameTaken       = apperror.New(apperror.KindConflict, "role name already exists")
	ErrSystemRoleProtected = apperror.New(apperror.KindPolicyViolation, "system role permissions cannot be modified")
	ErrSystemRoleDelete    = apperror.New(apperror.KindPolicyViolation, "system roles cannot be deleted")
	ErrRoleInUse           = apperror.New(apperror.KindPolicyViolation, "role is still assigned to users")
)
