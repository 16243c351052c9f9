package models

import "errors"

var (
	// ErrDataUnavailable means the price series was empty or unusable.
	ErrDataUnavailable = errors.New("market data unavailable")
	// ErrInvalidInput means a caller-supplied parameter failed validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrPersistence means a storage write failed.
	ErrPersistence = errors.New("persistence failure")

	ErrNotFound       = errors.New("not found")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrUserExists     = errors.New("username or email already registered")
	ErrBadCredentials = errors.New("invalid username or password")
	ErrCodeInvalid    = errors.New("reset code invalid or expired")
)
