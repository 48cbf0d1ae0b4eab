package domain

import (
	"time"
)

// SessionState is the single tagged state of a QRIS payment session.
// It replaces the mode-flag soup (isChecking, isConfirmed, ...) a naive
// implementation accumulates.
type SessionState string

const (
	SessionStateIdle       SessionState = "idle"
	SessionStatePending    SessionState = "pending"
	SessionStateConfirming SessionState = "confirming"
	SessionStateConfirmed  SessionState = "confirmed"
	SessionStateExpired    SessionState = "expired"
	SessionStateCancelled  SessionState = "cancelled"
)

// Terminal reports whether no further transitions are possible.
func (s SessionState) Terminal() bool {
	return s == SessionStateConfirmed || s == SessionStateExpired || s == SessionStateCancelled
}

// PaymentSession is the short-lived record of one QR checkout attempt.
// The Code payload is a display artifact; nothing in the core consumes it.
type PaymentSession struct {
	ID        string       `json:"id"`
	Amount    float64      `json:"amount"`
	Code      string       `json:"code"`
	State     SessionState `json:"state"`
	CreatedAt time.Time    `json:"created_at"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// SecondsRemaining is the countdown value shown next to the QR code,
// floored at zero.
func (p *PaymentSession) SecondsRemaining(now time.Time) int {
	if !now.Before(p.ExpiresAt) {
		return 0
	}
	return int(p.ExpiresAt.Sub(now).Seconds())
}
