// Package utils holds small shared helpers.
package utils

import "fmt"

// ValidationError marks input data that is structurally unusable: a table
// with no value columns, a malformed row, an unparseable timestamp. Handlers
// map it to a client error instead of a server failure.
type ValidationError struct {
	Message string
}

// Error returns the error message string.
func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a new ValidationError with a specific message.
func NewValidationError(message string) error {
	return &ValidationError{
		Message: message,
	}
}

// NewValidationErrorf creates a new ValidationError with a formatted message.
func NewValidationErrorf(format string, args ...interface{}) error {
	return &ValidationError{
		Message: fmt.Sprintf(format, args...),
	}
}
