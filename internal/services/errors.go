package services

import "errors"

var (
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrInvalidDate     = errors.New("date is missing or malformed")
	ErrLeaseTerminated = errors.New("lease is terminated")
	ErrShopOccupied    = errors.New("shop already has an active lease")
	ErrReasonRequired  = errors.New("a reason is required")
	ErrPaymentDeleted  = errors.New("payment is already deleted")
)
