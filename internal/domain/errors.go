package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// Verification failures. Handlers collapse the first four into one generic
// "invalid or expired code" response; the distinction exists for logging.
var (
	ErrNoPendingCode    = errors.New("no pending passcode")
	ErrPasscodeExpired  = errors.New("passcode expired")
	ErrPasscodeMismatch = errors.New("passcode mismatch")
	ErrTooManyAttempts  = errors.New("too many failed attempts")
	ErrCooldownActive   = errors.New("resend cooldown active")
)
