package backend

import "errors"

var (
	// ErrInvalidConfig is returned when the client configuration is incomplete
	ErrInvalidConfig = errors.New("invalid backend configuration")

	// ErrUnauthenticated is returned when the backend rejects the bearer credential
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrValidation is returned when the backend rejects the request payload,
	// including a duplicate review for the same product and user
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when the requested resource does not exist
	ErrNotFound = errors.New("resource not found")

	// ErrUnavailable is returned on network failures and backend server errors
	ErrUnavailable = errors.New("backend unavailable")
)
