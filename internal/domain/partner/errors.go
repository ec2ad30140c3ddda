package partner

import "github.com/sqooli/partner-api/internal/pkg/apperror"

var (
	ErrPartnerNotFound      = apperror.New(apperror.KindNotFound, "partner not found")
	ErrPartnerAlreadyExists = apperror.New(apperror.KindConflict, "partner with this email already exists")
	ErrSystemPartner        = apperror.New(apperror.KindPolicyViolation, "the system partner cannot be modified")
)
