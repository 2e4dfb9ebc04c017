// Package common defines shared constants and sentinel errors used across
// the fintrack server and client. Callers should use errors.Is to match
// these values; services wrap them with context via fmt.Errorf("%w: ...").
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound    = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal         = errors.New("internal error")
	ErrorUnauthorized     = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Validation errors (missing or malformed fields).
	ErrValidation = errors.New("validation error")

	// Token errors. Both are reported identically to API callers.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
