// Package error defines domain-specific errors for the Gestor de Gastos backend.
package error

import "errors"

// Session domain errors.
var (
	// ErrMissingToken is returned when no session token is provided.
	ErrMissingToken = errors.New("session token is required")

	// ErrInvalidToken is returned when a session token is invalid or expired.
	ErrInvalidToken = errors.New("invalid or expired session token")

	// ErrInvalidEmail is returned when the supplied email is not usable as a user key.
	ErrInvalidEmail = errors.New("invalid email")

	// ErrRateLimited is returned when too many session requests arrive from one client.
	ErrRateLimited = errors.New("too many requests")
)

// SessionErrorCode defines error codes for session errors.
// Format: AUTH-XXYYYY where XX is category and YYYY is specific error.
type SessionErrorCode string

const (
	ErrCodeMissingToken SessionErrorCode = "AUTH-010001"
	ErrCodeInvalidToken SessionErrorCode = "AUTH-010002"
	ErrCodeInvalidEmail SessionErrorCode = "AUTH-010003"
	ErrCodeRateLimited  SessionErrorCode = "AUTH-010004"
)
