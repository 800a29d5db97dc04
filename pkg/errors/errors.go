// Package errors defines the error taxonomy shared by the sekr8s commands.
package errors

import (
	"errors"
	"fmt"
)

// Error types
const (
	// ErrExternalTool is returned when the cluster tool binary is missing
	// or exits nonzero
	ErrExternalTool = "external_tool"

	// ErrKeyNotFound is returned when a requested key is absent from the
	// fetched secret
	ErrKeyNotFound = "key_not_found"

	// ErrUsage is returned on an internal contract violation, such as two
	// concurrent line requests
	ErrUsage = "usage"

	// ErrInvalidArgument is returned when an invalid argument is provided
	ErrInvalidArgument = "invalid_argument"

	// ErrInternal is returned when there is an internal error
	ErrInternal = "internal"
)

// Error represents an error in the application
type Error struct {
	// Type is the error type
	Type string

	// Message is the error message
	Message string

	// Cause is the underlying error
	Cause error
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new error
func NewError(errorType, message string, cause error) *Error {
	return &Error{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// NewExternalToolError creates a new external tool error
func NewExternalToolError(message string, cause error) *Error {
	return NewError(ErrExternalTool, message, cause)
}

// NewKeyNotFoundError creates a new key not found error
func NewKeyNotFoundError(message string, cause error) *Error {
	return NewError(ErrKeyNotFound, message, cause)
}

// NewUsageError creates a new usage error
func NewUsageError(message string, cause error) *Error {
	return NewError(ErrUsage, message, cause)
}

// NewInvalidArgumentError creates a new invalid argument error
func NewInvalidArgumentError(message string, cause error) *Error {
	return NewError(ErrInvalidArgument, message, cause)
}

// NewInternalError creates a new internal error
func NewInternalError(message string, cause error) *Error {
	return NewError(ErrInternal, message, cause)
}

func isType(err error, errorType string) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == errorType
}

// IsExternalTool checks if the error is an external tool error
func IsExternalTool(err error) bool {
	return isType(err, ErrExternalTool)
}

// IsKeyNotFound checks if the error is a key not found error
func IsKeyNotFound(err error) bool {
	return isType(err, ErrKeyNotFound)
}

// IsUsage checks if the error is a usage error
func IsUsage(err error) bool {
	return isType(err, ErrUsage)
}

// IsInvalidArgument checks if the error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return isType(err, ErrInvalidArgument)
}

// IsInternal checks if the error is an internal error
func IsInternal(err error) bool {
	return isType(err, ErrInternal)
}

// IsKnown reports whether err carries one of the taxonomy types above.
// Anything else is treated as a defect by the top-level handler.
func IsKnown(err error) bool {
	var e *Error
	return errors.As(err, &e)
}
