package auth

import "github.com/sqooli/partner-api/internal/pkg/apperror"

var (
	ErrInvalidCredentials = apperror.New(apperror.KindUnauthorized, "invalid login or password")
	ErrUserInactive       = apperror.New(apperror.KindForbidden, "account is deactivated")
	ErrPartnerInactive    = apperror.New(apperror.KindForbidden, "partner account is deactivated")
)
