package campaign

import "github.com/sqooli/partner-api/internal/pkg/apperror"

var (
	ErrCampaignNotFound  = apperror.New(apperror.KindNotFound, "campaign not found")
	ErrCampaignCodeTaken = apperror.New(apperror.KindConflict, "campaign promo code already in use")
	ErrPromoCodeNotFound = apperror.New(apperror.KindNotFound, "promo code not found")
	ErrPromoCodeExists   = apperror.New(apperror.KindConflict, "promo code already exists")
	ErrInvalidDateWindow = apperror.New(apperror.KindValidation, "end_date must be after start_date")
)
