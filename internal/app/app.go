package app

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/agbru/seqcalc/internal/cli"
	"github.com/agbru/seqcalc/internal/config"
	apperrors "github.com/agbru/seqcalc/internal/errors"
	"github.com/agbru/seqcalc/internal/logging"
	"github.com/agbru/seqcalc/internal/orchestration"
	"github.com/agbru/seqcalc/internal/server"
	"github.com/agbru/seqcalc/internal/service"
	"github.com/agbru/seqcalc/internal/ui"
	"github.com/agbru/seqcalc/pkg/sequence"
)

// Application represents the seqcalc application instance. It holds the
// parsed configuration and the service every mode is run against.
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// Service is the entry point to the sequence and combinatorics packages.
	Service service.Service
	// Logger receives structured logs, on stderr or in the -log-file.
	Logger logging.Logger
	// ErrWriter is the writer for error output (typically os.Stderr).
	ErrWriter io.Writer
	// In is the REPL input (typically os.Stdin).
	In io.Reader

	logCloser io.Closer
}

// New creates a new Application instance by parsing command-line arguments.
//
// Parameters:
//   - args: The command-line arguments (typically os.Args).
//   - errWriter: The writer for error output.
//
// Returns:
//   - *Application: A new application instance.
//   - error: An error if configuration parsing or validation fails, or if
//     the log file cannot be opened.
func New(args []string, errWriter io.Writer) (*Application, error) {
	factory := sequence.NewFactory()

	programName := "seqcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, factory.List())
	if err != nil {
		return nil, err
	}

	a := &Application{Config: cfg, ErrWriter: errWriter, In: os.Stdin}

	logOut := errWriter
	if cfg.LogFile != "" {
		w, err := logging.NewRotatingWriter(cfg.LogFile)
		if err != nil {
			return nil, err
		}
		logOut, a.logCloser = w, w
	}
	a.Logger = logging.NewLogger(logOut, "seqcalc", cfg.LogLevel)

	svc, err := service.NewSequenceService(factory, config.DefaultLimits(), a.Logger.With(logging.String("layer", "service")))
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Service = svc
	return a, nil
}

// Close releases the log file, if any.
func (a *Application) Close() error {
	if a.logCloser == nil {
		return nil
	}
	return a.logCloser.Close()
}

// Run executes the application based on the configured mode: completion,
// server, REPL, or one of the one-shot modes.
//
// Parameters:
//   - ctx: The context for managing cancellation and timeouts.
//   - out: The writer for standard output.
//
// Returns:
//   - int: An exit code (0 for success, non-zero for errors).
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.NoColor)

	if a.Config.ServerMode {
		return a.runServer()
	}
	if a.Config.Interactive {
		return a.runREPL(out)
	}

	ctx, cancel := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancel.Cleanup()

	if !a.Config.JSONOutput && !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
	}

	switch a.Config.Mode {
	case config.ModePascal:
		return a.runPascal(ctx, out)
	case config.ModeBinomial:
		return a.runBinomial(ctx, out)
	case config.ModeJosephus:
		return a.runJosephus(ctx, out)
	case config.ModeHanoi:
		return a.runHanoi(ctx, out)
	default:
		return a.runSequence(ctx, out)
	}
}

func (a *Application) outputConfig() cli.OutputConfig {
	return cli.OutputConfig{JSON: a.Config.JSONOutput, Quiet: a.Config.Quiet}
}

// fail reports err and returns its exit code.
func (a *Application) fail(err error, start time.Time, out io.Writer) int {
	a.Logger.Debug("run failed", logging.String("mode", a.Config.Mode), logging.Err(err))
	return apperrors.HandleError(err, time.Since(start), out, ui.Palette{})
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Service.Families()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runServer starts the HTTP server mode.
func (a *Application) runServer() int {
	srv := server.NewServer(a.Service, a.Config,
		server.WithLogger(a.Logger.With(logging.String("layer", "server"))),
		server.WithBuildInfo(BuildInfo()),
	)
	if err := srv.Start(); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runREPL starts the interactive REPL mode.
func (a *Application) runREPL(out io.Writer) int {
	family := a.Config.Family
	if family == config.FamilyAll {
		family = config.DefaultFamily
	}
	repl, err := cli.NewREPL(a.Service, cli.REPLConfig{
		Family:   family,
		Params:   sequence.Params{Start: a.Config.Start, Step: a.Config.Step, Ratio: a.Config.Ratio, Index: a.Config.Index},
		Timeout:  a.Config.Timeout,
		MaxIndex: a.Service.Limits().MaxIndex,
	})
	if err != nil {
		return apperrors.HandleError(err, 0, a.ErrWriter, ui.Palette{})
	}
	repl.SetInput(a.In)
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

// runSequence lists terms of one family, or of all of them in parallel.
func (a *Application) runSequence(ctx context.Context, out io.Writer) int {
	families := cli.ResolveFamilies(a.Config.Family, a.Service.Families())
	if len(families) == 0 {
		return apperrors.HandleError(
			apperrors.NewConfigError("unrecognized family: '%s'", a.Config.Family), 0, out, ui.Palette{})
	}
	if !a.Config.JSONOutput && !a.Config.Quiet {
		cli.PrintExecutionMode(families, out)
	}
	results := orchestration.ExecuteSequences(ctx, a.Service, families, a.Config, out)
	return orchestration.AnalyzeResults(results, a.Config, out)
}

func (a *Application) runPascal(ctx context.Context, out io.Writer) int {
	start := time.Now()
	res, err := a.Service.Triangle(ctx, a.Config.Rows)
	if err != nil {
		return a.fail(err, start, out)
	}
	res.Duration = time.Since(start).String()
	if err := cli.DisplayTriangle(out, res, a.outputConfig()); err != nil {
		return a.fail(err, start, out)
	}
	return apperrors.ExitSuccess
}

func (a *Application) runBinomial(ctx context.Context, out io.Writer) int {
	start := time.Now()
	res, err := a.Service.Binomial(ctx, a.Config.K, a.Config.N)
	if err != nil {
		return a.fail(err, start, out)
	}
	res.Duration = time.Since(start).String()
	if err := cli.DisplayBinomial(out, res, a.outputConfig()); err != nil {
		return a.fail(err, start, out)
	}
	if !res.Consistent {
		return apperrors.ExitErrorMismatch
	}
	return apperrors.ExitSuccess
}

func (a *Application) runJosephus(ctx context.Context, out io.Writer) int {
	start := time.Now()
	res, err := a.Service.Josephus(ctx, a.Config.K, a.Config.N)
	if err != nil {
		return a.fail(err, start, out)
	}
	res.Duration = time.Since(start).String()
	if err := cli.DisplayJosephus(out, res, a.outputConfig()); err != nil {
		return a.fail(err, start, out)
	}
	if !res.Consistent {
		return apperrors.ExitErrorMismatch
	}
	return apperrors.ExitSuccess
}

// runHanoi streams the move log to out in text mode. JSON output collects
// the moves into the document; quiet mode prints only the count.
func (a *Application) runHanoi(ctx context.Context, out io.Writer) int {
	start := time.Now()

	var collected bytes.Buffer
	var sink io.Writer
	switch {
	case a.Config.JSONOutput:
		sink = &collected
	case a.Config.Quiet:
		sink = io.Discard
	default:
		sink = bufio.NewWriter(out)
	}

	res, err := a.Service.Hanoi(ctx, sink, uint(a.Config.N), a.Config.Variant)
	if bw, ok := sink.(*bufio.Writer); ok {
		if ferr := bw.Flush(); ferr != nil && err == nil {
			err = apperrors.NewComputationError("hanoi", ferr)
		}
	}
	if err != nil {
		return a.fail(err, start, out)
	}
	res.Duration = time.Since(start).String()
	if a.Config.JSONOutput {
		res.Moves = splitMoves(collected.String())
	}
	if err := cli.DisplayHanoiSummary(out, res, a.outputConfig()); err != nil {
		return a.fail(err, start, out)
	}
	return apperrors.ExitSuccess
}

func splitMoves(log string) []string {
	log = strings.TrimSuffix(log, "\n")
	if log == "" {
		return []string{}
	}
	return strings.Split(log, "\n")
}

// IsHelpError checks if the error is a help flag error (-help was used).
//
// Parameters:
//   - err: The error to check.
//
// Returns:
//   - bool: True if the error indicates help was requested.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
