package calculation

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is wrapped by every parameter validation failure.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnknownCalculator is returned when no calculator has the requested name.
	ErrUnknownCalculator = errors.New("unknown calculator")
)

// ValidationError names the offending parameter.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
