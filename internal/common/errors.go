// Package common defines shared constants and sentinel errors used across
// client and server layers of CardKeep. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// Client-side taxonomy surfaced by the stores.
	ErrValidation        = errors.New("validation error")
	ErrRemoteUnavailable = errors.New("remote store unavailable")
	ErrPermissionDenied  = errors.New("permission denied")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrResetTokenExpired   = errors.New("reset token expired")
)
