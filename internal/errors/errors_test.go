package apperrors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestConfigError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error returns message",
			err:      ConfigError{Message: "invalid flag value"},
			expected: "invalid flag value",
		},
		{
			name:     "NewConfigError creates formatted error",
			err:      NewConfigError("invalid value %d for flag %s", 42, "-count"),
			expected: "invalid value 42 for flag -count",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
			var configErr ConfigError
			if !errors.As(tt.err, &configErr) {
				t.Error("expected error to be ConfigError type")
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("geometric ratio must be non-zero")
	tests := []struct {
		name     string
		err      ValidationError
		expected string
	}{
		{
			name:     "with field",
			err:      ValidationError{Field: "ratio", Message: "must be non-zero", Value: 0.0},
			expected: "validation error for 'ratio': must be non-zero",
		},
		{
			name:     "without field",
			err:      ValidationError{Message: "bad request"},
			expected: "validation error: bad request",
		},
		{
			name:     "with cause",
			err:      ValidationError{Field: "ratio", Message: sentinel.Error(), Cause: sentinel},
			expected: "validation error for 'ratio': geometric ratio must be non-zero",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}

	wrapped := fmt.Errorf("request: %w", ValidationError{Field: "ratio", Cause: sentinel})
	if !errors.Is(wrapped, sentinel) {
		t.Error("errors.Is should reach the cause through ValidationError")
	}
	if !IsValidation(wrapped) {
		t.Error("IsValidation() = false for a wrapped ValidationError")
	}
}

func TestComputationError(t *testing.T) {
	t.Parallel()

	if NewComputationError("hanoi", nil) != nil {
		t.Error("NewComputationError with nil cause should return nil")
	}

	err := NewComputationError("hanoi", context.Canceled)
	if err.Error() != "hanoi: context canceled" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, context.Canceled) {
		t.Error("errors.Is should find context.Canceled")
	}

	bare := ComputationError{Cause: errors.New("disk full")}
	if bare.Error() != "disk full" {
		t.Errorf("Error() without op = %q", bare.Error())
	}
}

func TestMismatchError(t *testing.T) {
	t.Parallel()

	err := MismatchError{Family: "catalan", Index: 40, Seek: "1", Walk: "2"}
	want := "catalan: index 40 seeks to 1 but walks to 2"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestServerError(t *testing.T) {
	t.Parallel()

	cause := errors.New("address already in use")
	err := NewServerError("failed to listen", cause)
	if err.Error() != "failed to listen: address already in use" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
	if NewServerError("shutdown", nil).Error() != "shutdown" {
		t.Error("Error() without cause should be the message")
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()

	if WrapError(nil, "context") != nil {
		t.Error("WrapError(nil) should return nil")
	}
	base := errors.New("base")
	err := WrapError(base, "loading family %q", "lucas")
	if err.Error() != `loading family "lucas": base` {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, base) {
		t.Error("errors.Is should find the wrapped error")
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want bool
	}{
		{context.Canceled, true},
		{context.DeadlineExceeded, true},
		{fmt.Errorf("wrapped: %w", context.DeadlineExceeded), true},
		{errors.New("other"), false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := IsContextError(tt.err); got != tt.want {
			t.Errorf("IsContextError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"timeout", fmt.Errorf("run: %w", context.DeadlineExceeded), ExitErrorTimeout},
		{"canceled", NewComputationError("sequence", context.Canceled), ExitErrorCanceled},
		{"mismatch", fmt.Errorf("verify: %w", MismatchError{Family: "lucas"}), ExitErrorMismatch},
		{"validation", NewValidationError("k", "too large", 9), ExitErrorConfig},
		{"config", NewConfigError("bad flag"), ExitErrorConfig},
		{"generic", errors.New("boom"), ExitErrorGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
