package domain

import "errors"

// Validation errors surfaced by the transaction core. None of these are
// fatal; callers present them to the cashier and let them retry or upgrade.
var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrQuotaExceeded     = errors.New("monthly transaction limit reached")
	ErrShiftRequired     = errors.New("no open shift")
	ErrShiftClosed       = errors.New("shift is closed")
	ErrInvalidAmount     = errors.New("amount must not be negative")
	ErrSessionExpired    = errors.New("payment session expired")
	ErrInvalidTransition = errors.New("operation not allowed in current state")
)
