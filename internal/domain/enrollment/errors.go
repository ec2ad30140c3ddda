package enrollment

import "github.com/sqooli/partner-api/internal/pkg/apperror"

var (
	ErrEnrollmentNotFound = apperror.New(apperror.KindNotFound, "enrollment not found")
	ErrAlreadyEnrolled    = apperror.New(apperror.KindConflict, "transaction already has an enrollment")
	ErrRedeemCodeTaken    = apperror.New(apperror.KindConflict, "redeem code already in use")
	ErrInvalidTransition  = apperror.New(apperror.KindPolicyViolation, "only pending enrollments can be redeemed or expired")
	ErrPartnerMismatch    = apperror.New(apperror.KindInvalidReference, "campaign and transaction belong to different partners")
	ErrNotRedeemable      = apperror.New(apperror.KindPolicyViolation, "enrollment linked to this transaction has expired")
)
