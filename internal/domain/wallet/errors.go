package wallet

import "github.com/sqooli/partner-api/internal/pkg/apperror"

var (
	ErrWalletNotFound   = apperror.New(apperror.KindNotFound, "wallet not found")
	ErrWalletExists     = apperror.New(apperror.KindConflict, "partner already has a wallet")
	ErrInvalidAmount    = apperror.New(apperror.KindValidation, "amount must be greater than zero")
	ErrIncorrectPin     = apperror.New(apperror.KindForbidden, "incorrect PIN")
	ErrPayoutIncomplete = apperror.New(apperror.KindValidation, "payout details incomplete for withdrawal method")
	ErrLimitNotFound    = apperror.New(apperror.KindNotFound, "withdrawal limit not found")
	ErrInvalidLimit     = apperror.New(apperror.KindValidation, "min amount must not exceed max amount")

	errAccountNumberTaken = apperror.New(apperror.KindConflict, "account number already in use")
)
