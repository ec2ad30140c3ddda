package user

import "github.com/sqooli/partner-api/internal/pkg/apperror"

var (
	ErrUserNotFound         = apperror.New(apperror.KindNotFound, "user not found")
	ErrUserAlreadyExists    = apperror.New(apperror.KindConflict, "user already exists")
	ErrRoleInactive         = apperror.New(apperror.KindValidation, "role is inactive")
	ErrInvalidPassword      = apperror.New(apperror.KindUnauthorized, "current password is incorrect")
	ErrCannotGrantAllAccess = apperror.New(apperror.KindForbidden, "only platform administrators can grant all_access")
	errExtensionTaken       = apperror.New(apperror.KindConflict, "extension already exists")
)
