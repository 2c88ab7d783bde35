// Package config provides the configuration management for the seqcalc
// application. It defines the configuration structure, parses command-line
// flags with environment overrides, and validates the result.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/seqcalc/internal/errors"
	"github.com/agbru/seqcalc/pkg/sequence"
)

const (
	// EnvPrefix is the prefix for all environment variables used by seqcalc.
	EnvPrefix = "SEQCALC_"

	// FamilyAll selects every registered family in sequence mode.
	FamilyAll = "all"
)

// Run modes selected with -mode.
const (
	ModeSequence = "sequence"
	ModePascal   = "pascal"
	ModeBinomial = "binomial"
	ModeJosephus = "josephus"
	ModeHanoi    = "hanoi"
)

// Hanoi variants selected with -variant.
const (
	VariantClassic    = "classic"
	VariantIterative  = "iterative"
	VariantRestricted = "restricted"
)

// Modes lists the accepted -mode values.
var Modes = []string{ModeSequence, ModePascal, ModeBinomial, ModeJosephus, ModeHanoi}

// Variants lists the accepted -variant values.
var Variants = []string{VariantClassic, VariantIterative, VariantRestricted}

// Default configuration values.
const (
	DefaultMode     = ModeSequence
	DefaultFamily   = sequence.FamilyFibonacci
	DefaultStart    = 0.0
	DefaultStep     = 1.0
	DefaultRatio    = 2.0
	DefaultCount    = 10
	DefaultK        = 2
	DefaultN        = 5
	DefaultRows     = 10
	DefaultVariant  = VariantClassic
	DefaultTimeout  = 30 * time.Second
	DefaultPort     = "8080"
	DefaultLogLevel = "info"
)

// Limits bounds the work a single request may trigger. The CLI validates
// against them at startup and the service enforces them per call.
type Limits struct {
	// MaxIndex bounds the index a cursor may be sought to.
	MaxIndex uint64
	// MaxCount bounds the number of terms listed at once.
	MaxCount int
	// MaxPascalRows bounds the size of a printed triangle.
	MaxPascalRows int
	// MaxBinomialN bounds n for binomial coefficients.
	MaxBinomialN uint64
	// MaxJosephusN bounds the circle size, which is also the recursion depth.
	MaxJosephusN uint64
	// MaxHanoiDisks bounds the classic and iterative solvers.
	MaxHanoiDisks uint
	// MaxRestrictedDisks bounds the restricted solver, whose move count
	// grows as 3^n.
	MaxRestrictedDisks uint
}

// DefaultLimits returns the limits used by the CLI and the server.
func DefaultLimits() Limits {
	return Limits{
		MaxIndex:           100_000_000,
		MaxCount:           10_000,
		MaxPascalRows:      68,
		MaxBinomialN:       5_000,
		MaxJosephusN:       100_000,
		MaxHanoiDisks:      20,
		MaxRestrictedDisks: 12,
	}
}

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Mode selects what to compute: sequence, pascal, binomial, josephus or hanoi.
	Mode string
	// Family is a sequence family name, or "all".
	Family string
	// Start is the index-0 value of a progression.
	Start float64
	// Step is the common difference of an arithmetic progression.
	Step float64
	// Ratio is the common ratio of a geometric progression.
	Ratio float64
	// Index is the first index listed in sequence mode.
	Index uint64
	// Count is the number of terms listed in sequence mode.
	Count int
	// K is k for binomial and Josephus modes.
	K uint64
	// N is n for binomial and Josephus modes, and the disk count for hanoi.
	N uint64
	// Rows is the number of rows printed in pascal mode.
	Rows int
	// Variant selects the Hanoi solver.
	Variant string
	// Timeout bounds the whole run.
	Timeout time.Duration
	// Verify cross-checks seeks against naive stepping in sequence mode.
	Verify bool
	// JSONOutput switches output to JSON.
	JSONOutput bool
	// Quiet suppresses spinners, headers and status lines.
	Quiet bool
	// NoColor disables colours. NO_COLOR is honoured as well.
	NoColor bool
	// ServerMode starts the HTTP API instead of running once.
	ServerMode bool
	// Port is the HTTP listen port.
	Port string
	// Interactive starts the REPL.
	Interactive bool
	// LogLevel filters structured logs: debug, info, warn or error.
	LogLevel string
	// LogFile, when set, receives structured logs through a rotating file
	// writer instead of stderr.
	LogFile string
	// Completion names a shell whose completion script is printed instead
	// of running.
	Completion string
}

// Validate checks the semantic consistency of the configuration.
//
// Parameters:
//   - families: The registered sequence family names.
//
// Returns:
//   - error: A ConfigError describing the first problem, or nil.
func (c AppConfig) Validate(families []string) error {
	limits := DefaultLimits()

	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if !slices.Contains(Modes, c.Mode) {
		return apperrors.NewConfigError("unrecognized mode: '%s'. Valid modes are: [%s]", c.Mode, strings.Join(Modes, ", "))
	}
	if c.Family != FamilyAll && !slices.Contains(families, c.Family) {
		return apperrors.NewConfigError("unrecognized family: '%s'. Valid families are: 'all' or [%s]", c.Family, strings.Join(families, ", "))
	}
	if c.Ratio == 0 && (c.Family == sequence.FamilyGeometric || c.Family == FamilyAll) && c.Mode == ModeSequence {
		return apperrors.NewConfigError("geometric ratio must be non-zero")
	}
	if c.Count <= 0 || c.Count > limits.MaxCount {
		return apperrors.NewConfigError("count must be between 1 and %d, got %d", limits.MaxCount, c.Count)
	}
	if c.Index > limits.MaxIndex {
		return apperrors.NewConfigError("index %d exceeds the maximum of %d", c.Index, limits.MaxIndex)
	}
	if c.Rows < 0 || c.Rows > limits.MaxPascalRows {
		return apperrors.NewConfigError("rows must be between 0 and %d, got %d", limits.MaxPascalRows, c.Rows)
	}
	if !slices.Contains(Variants, c.Variant) {
		return apperrors.NewConfigError("unrecognized hanoi variant: '%s'. Valid variants are: [%s]", c.Variant, strings.Join(Variants, ", "))
	}
	if c.Mode == ModeHanoi {
		maxDisks := limits.MaxHanoiDisks
		if c.Variant == VariantRestricted {
			maxDisks = limits.MaxRestrictedDisks
		}
		if c.N > uint64(maxDisks) {
			return apperrors.NewConfigError("%s hanoi supports at most %d disks, got %d", c.Variant, maxDisks, c.N)
		}
	}
	return nil
}

// ParseConfig parses the command-line arguments into an AppConfig, applies
// SEQCALC_* environment overrides to the flags not given on the command
// line, and validates the result.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: The command-line arguments (typically os.Args[1:]).
//   - errorWriter: Where parsing errors and usage information are printed.
//   - families: The registered family names, used for validation and help.
//
// Returns:
//   - AppConfig: The populated configuration struct.
//   - error: An error if flag parsing fails or validation fails.
func ParseConfig(programName string, args []string, errorWriter io.Writer, families []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := AppConfig{}
	fs.StringVar(&config.Mode, "mode", DefaultMode, fmt.Sprintf("What to compute: one of [%s].", strings.Join(Modes, ", ")))
	fs.StringVar(&config.Family, "family", DefaultFamily, fmt.Sprintf("Sequence family: 'all' or one of [%s].", strings.Join(families, ", ")))
	fs.Float64Var(&config.Start, "start", DefaultStart, "Index-0 value of arithmetic and geometric progressions.")
	fs.Float64Var(&config.Step, "step", DefaultStep, "Common difference of the arithmetic progression.")
	fs.Float64Var(&config.Ratio, "ratio", DefaultRatio, "Common ratio of the geometric progression (non-zero).")
	fs.Uint64Var(&config.Index, "index", 0, "First index to list in sequence mode.")
	fs.IntVar(&config.Count, "count", DefaultCount, "Number of terms to list in sequence mode.")
	fs.Uint64Var(&config.K, "k", DefaultK, "k for binomial C(n, k) and the Josephus step.")
	fs.Uint64Var(&config.N, "n", DefaultN, "n for binomial and Josephus modes; disk count in hanoi mode.")
	fs.IntVar(&config.Rows, "rows", DefaultRows, "Number of rows of Pascal's triangle to print.")
	fs.StringVar(&config.Variant, "variant", DefaultVariant, fmt.Sprintf("Hanoi solver: one of [%s].", strings.Join(Variants, ", ")))
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time.")
	fs.BoolVar(&config.Verify, "verify", false, "Cross-check seeks against step-by-step walks.")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output results in JSON format.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - minimal output for scripts.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.BoolVar(&config.ServerMode, "server", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")
	fs.BoolVar(&config.Interactive, "interactive", false, "Start in interactive REPL mode.")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Structured log level: debug, info, warn or error.")
	fs.StringVar(&config.LogFile, "log-file", "", "Write structured logs to this file, rotated by size.")
	fs.StringVar(&config.Completion, "completion", "", "Print a completion script for bash, zsh, fish or powershell.")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&config, fs)

	config.Mode = strings.ToLower(config.Mode)
	config.Family = strings.ToLower(config.Family)
	config.Variant = strings.ToLower(config.Variant)
	if err := config.Validate(families); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.Join(errors.New("invalid configuration"), err)
	}
	return config, nil
}
