package session

import "github.com/sqooli/partner-api/internal/pkg/apperror"

var ErrSessionNotFound = apperror.New(apperror.KindNotFound, "session not found")
