package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Storage could not complete in time (timeout, lock, serialization).
	// Clients are expected to retry.
	ErrorBusy = errors.New("server busy")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Validationf returns an error wrapping ErrorValidation with a formatted
// detail message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrorValidation, fmt.Sprintf(format, args...))
}

// Detail strips the sentinel prefix from a validation error so it can be
// shown to the caller as-is.
func Detail(err error) string {
	msg := err.Error()
	prefix := ErrorValidation.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}
