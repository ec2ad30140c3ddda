package revenue

import "github.com/sqooli/partner-api/internal/pkg/apperror"

var (
	ErrNotSettleable  = apperror.New(apperror.KindPolicyViolation, "only successful transactions can be settled")
	ErrAlreadyLogged  = apperror.New(apperror.KindConflict, "revenue already logged for transaction")
	ErrInvalidDays    = apperror.New(apperror.KindValidation, "days must be between 1 and 365")
	ErrInvalidPercent = apperror.New(apperror.KindValidation, "partner percentage must be between 0 and 100")

	errAlreadySettled = apperror.New(apperror.KindConflict, "transaction already settled")
)
