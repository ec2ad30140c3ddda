package notification

import "github.com/sqooli/partner-api/internal/pkg/apperror"

var ErrNotificationNotFound = apperror.New(apperror.KindNotFound, "notification not found")
