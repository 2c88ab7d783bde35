// Package apperrors defines the structured error types of seqcalc and the
// process exit codes they map to.
//
// Library packages under pkg/ return plain sentinel errors wrapped with
// fmt.Errorf and %w. The service layer classifies them into the types
// below so that the CLI can pick an exit code and the server an HTTP
// status.
package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitSuccess       = 0   // Successful execution.
	ExitErrorGeneric  = 1   // Any unclassified failure.
	ExitErrorTimeout  = 2   // The -timeout deadline was reached.
	ExitErrorMismatch = 3   // A seek and a naive walk disagreed.
	ExitErrorConfig   = 4   // Invalid flags, environment or request values.
	ExitErrorCanceled = 130 // Interrupted (SIGINT).
)

// ConfigError reports an invalid command line or environment setting.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ValidationError reports an argument that a sequence, binomial, Josephus
// or Hanoi operation cannot accept. It is shared by the CLI and the HTTP
// API, where it becomes a 400 response.
type ValidationError struct {
	// Field is the name of the offending parameter.
	Field string
	// Message describes why validation failed.
	Message string
	// Value is the rejected value, if any.
	Value any
	// Cause is the library error that triggered the validation failure.
	Cause error
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e ValidationError) Unwrap() error { return e.Cause }

// NewValidationError creates a ValidationError without an underlying cause.
func NewValidationError(field, message string, value any) error {
	return ValidationError{Field: field, Message: message, Value: value}
}

// ComputationError wraps a failure that happened while a computation was
// running, such as a failed move-log write or a cancelled context.
type ComputationError struct {
	// Op names the computation, e.g. "hanoi" or "sequence".
	Op string
	// Cause is the underlying error.
	Cause error
}

func (e ComputationError) Error() string {
	if e.Op == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

func (e ComputationError) Unwrap() error { return e.Cause }

// NewComputationError wraps cause as a ComputationError. It returns nil for
// a nil cause.
func NewComputationError(op string, cause error) error {
	if cause == nil {
		return nil
	}
	return ComputationError{Op: op, Cause: cause}
}

// MismatchError reports that seeking a cursor to an index produced a
// different term than walking to it one step at a time.
type MismatchError struct {
	Family string
	Index  uint64
	Seek   string
	Walk   string
}

func (e MismatchError) Error() string {
	return fmt.Sprintf("%s: index %d seeks to %s but walks to %s", e.Family, e.Index, e.Seek, e.Walk)
}

// ServerError represents errors that occur in the HTTP server component.
type ServerError struct {
	// Message is a descriptive message about the server error.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error combines the message and the underlying cause if present.
func (e ServerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e ServerError) Unwrap() error { return e.Cause }

// NewServerError creates a new ServerError with a message and optional cause.
func NewServerError(message string, cause error) error {
	return ServerError{Message: message, Cause: cause}
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// It returns nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline
// exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IsValidation reports whether err carries a ValidationError or a
// ConfigError anywhere in its chain.
func IsValidation(err error) bool {
	var ve ValidationError
	var ce ConfigError
	return errors.As(err, &ve) || errors.As(err, &ce)
}

// ExitCode maps an error to the process exit code, without printing
// anything.
//
// Parameters:
//   - err: The error to classify; nil means success.
//
// Returns:
//   - int: One of the Exit* constants.
func ExitCode(err error) int {
	var mismatch MismatchError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &mismatch):
		return ExitErrorMismatch
	case IsValidation(err):
		return ExitErrorConfig
	default:
		return ExitErrorGeneric
	}
}
