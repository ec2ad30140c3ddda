package transaction

import "github.com/sqooli/partner-api/internal/pkg/apperror"

var (
	ErrTransactionNotFound = apperror.New(apperror.KindNotFound, "transaction not found")
	ErrDuplicateMpesaCode  = apperror.New(apperror.KindConflict, "transaction with this mpesa code already exists")
)
