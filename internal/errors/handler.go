package apperrors

import (
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the terminal colour codes used by HandleError.
// It keeps this package free of a dependency on the ui package.
type ColorProvider interface {
	Yellow() string
	Red() string
	Reset() string
}

// DefaultColorProvider provides no color codes (for non-terminal output).
type DefaultColorProvider struct{}

func (DefaultColorProvider) Yellow() string { return "" }
func (DefaultColorProvider) Red() string    { return "" }
func (DefaultColorProvider) Reset() string  { return "" }

// HandleError prints a one-line status for a failed run and returns the
// matching exit code.
//
// Parameters:
//   - err: The error that occurred.
//   - duration: How long the run lasted before it failed; 0 omits it.
//   - out: The io.Writer to which the status line is written.
//   - colors: Provider for terminal color codes (nil for no colors).
//
// Returns:
//   - int: The exit code, as computed by ExitCode.
func HandleError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	code := ExitCode(err)
	if code == ExitSuccess {
		return code
	}
	if colors == nil {
		colors = DefaultColorProvider{}
	}

	msgSuffix := ""
	if duration > 0 {
		msgSuffix = fmt.Sprintf(" after %s%s%s", colors.Yellow(), duration, colors.Reset())
	}

	switch code {
	case ExitErrorTimeout:
		fmt.Fprintf(out, "Status: Failure (Timeout). The execution limit was reached%s.\n", msgSuffix)
	case ExitErrorCanceled:
		fmt.Fprintf(out, "%sStatus: Canceled%s.%s\n", colors.Yellow(), msgSuffix, colors.Reset())
	case ExitErrorMismatch:
		fmt.Fprintf(out, "%sStatus: Mismatch.%s %v\n", colors.Red(), colors.Reset(), err)
	case ExitErrorConfig:
		fmt.Fprintf(out, "Status: Invalid input. %v\n", err)
	default:
		fmt.Fprintf(out, "Status: Failure. An unexpected error occurred: %v\n", err)
	}
	return code
}
