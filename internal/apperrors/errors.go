package apperrors

import (
	"errors"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrTransactionNotFound = errors.New("transaction not found")

	ErrRateUnavailable    = errors.New("exchange rate unavailable")
	ErrMinimumUnavailable = errors.New("minimum payment amount unavailable")

	ErrPaymentBelowMinimum = errors.New("amount below minimum transferable limit")
	ErrPaymentCreateFailed = errors.New("failed to create payment")
)
