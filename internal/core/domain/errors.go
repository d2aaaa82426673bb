package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is the parent of every "unknown id" error; match with errors.Is.
var ErrNotFound = errors.New("not found")

var (
	ErrEventNotFound        = fmt.Errorf("event %w", ErrNotFound)
	ErrUserNotFound         = fmt.Errorf("user %w", ErrNotFound)
	ErrRegistrationNotFound = fmt.Errorf("registration %w", ErrNotFound)
)

var (
	ErrValidation            = errors.New("validation error")
	ErrForbidden             = errors.New("access forbidden")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrUnauthenticated       = errors.New("authentication required")
	ErrInvalidState          = errors.New("event is not open for registration")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrCapacityExceeded      = errors.New("event is at full capacity")
	ErrDuplicateRegistration = errors.New("user is already registered for this event")
	ErrEmailTaken            = errors.New("email is already registered")
)

// Validationf wraps ErrValidation with a field-level message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
