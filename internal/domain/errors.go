package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrValidation     = errors.New("validation error")
	ErrAuthentication = errors.New("authentication error")
	ErrInvalidSession = errors.New("invalid session")
	ErrInvalidCode    = errors.New("invalid code")
	ErrInvalidToken   = errors.New("invalid token")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")

	// ErrConsentRequired is returned when a user with an accepted token has not
	// yet accepted the current consent terms.
	ErrConsentRequired = errors.New("consent required")

	// ErrInvalidOrExpiredChallenge is the challenge store's single failure mode:
	// unknown token, wrong type, or past its expiry instant.
	ErrInvalidOrExpiredChallenge = errors.New("invalid or expired challenge")
)
