package permission

import "github.com/sqooli/partner-api/internal/pkg/apperror"

var (
	ErrPermissionNotFound         = apperror.New(apperror.KindNotFound, "permission not found")
	ErrInvalidPermissionReference = apperror.New(apperror.KindInvalidReference, "invalid permission reference")
	ErrPermissionKeyTaken         = apperror.New(apperror.KindConflict, "permission key already exists")
	ErrInvalidPermissionKey       = apperror.New(apperror.KindValidation, "permission key must be a known category.level pair")
)
