package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")

	// OTP flow outcomes. ErrInvalidOrExpired deliberately covers both a wrong
	// code and an expired one so a caller cannot tell which it was.
	ErrInvalidOrExpired = errors.New("invalid or expired code")
	ErrRateLimited      = errors.New("rate limited")
	ErrDeliveryFailed   = errors.New("delivery failed")
)
