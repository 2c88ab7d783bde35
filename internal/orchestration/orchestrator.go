// Package orchestration runs sequence listings for one or several families
// concurrently and turns their outcomes into a report and an exit code.
package orchestration

import (
	"context"
	"fmt"
	"io"
	"sync"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/seqcalc/internal/cli"
	"github.com/agbru/seqcalc/internal/config"
	apperrors "github.com/agbru/seqcalc/internal/errors"
	"github.com/agbru/seqcalc/internal/service"
	"github.com/agbru/seqcalc/internal/ui"
	"github.com/agbru/seqcalc/pkg/models"
	"github.com/agbru/seqcalc/pkg/sequence"
)

// FamilyResult is the outcome of one family's run.
type FamilyResult struct {
	// Family is the registry name of the family.
	Family string
	// Sequence holds the listed terms. It is empty if Err is set.
	Sequence models.SequenceResult
	// Verify is set when verification was requested and succeeded.
	Verify *models.VerifyResult
	// Duration covers the listing and the verification.
	Duration time.Duration
	// Err is the first error of the run.
	Err error
}

// ProgressBufferMultiplier sizes the progress channel per family so that
// workers rarely block on a slow display.
const ProgressBufferMultiplier = 2

// RequestFromConfig builds the listing request for family from cfg.
func RequestFromConfig(cfg config.AppConfig, family string) service.SequenceRequest {
	return service.SequenceRequest{
		Family: family,
		Params: sequence.Params{Start: cfg.Start, Step: cfg.Step, Ratio: cfg.Ratio, Index: cfg.Index},
		Count:  cfg.Count,
	}
}

// ExecuteSequences lists cfg.Count terms of every family concurrently and,
// with cfg.Verify, checks the last listed index of each by a naive walk.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - svc: The service the listings are requested from.
//   - families: The families to run.
//   - cfg: The application configuration.
//   - out: The io.Writer for progress display.
//
// Returns:
//   - []FamilyResult: One result per family, in the order of families.
func ExecuteSequences(ctx context.Context, svc service.Service, families []string, cfg config.AppConfig, out io.Writer) []FamilyResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]FamilyResult, len(families))
	progressChan := make(chan cli.ProgressUpdate, len(families)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	if showProgress(cfg, out) {
		go cli.DisplayProgress(&displayWg, progressChan, len(families), out)
	} else {
		go cli.DrainProgress(&displayWg, progressChan)
	}

	for i, family := range families {
		g.Go(func() error {
			results[i] = runFamily(ctx, svc, family, cfg, i, progressChan)
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

func showProgress(cfg config.AppConfig, out io.Writer) bool {
	return !cfg.Quiet && !cfg.JSONOutput && cli.IsTerminal(out)
}

func runFamily(ctx context.Context, svc service.Service, family string, cfg config.AppConfig, idx int, progress chan<- cli.ProgressUpdate) FamilyResult {
	start := time.Now()
	res := FamilyResult{Family: family}
	defer func() { progress <- cli.ProgressUpdate{Index: idx, Value: 1.0} }()

	req := RequestFromConfig(cfg, family)
	seq, err := svc.Sequence(ctx, req)
	if err != nil {
		res.Err = err
		res.Duration = time.Since(start)
		return res
	}
	res.Sequence = seq

	if cfg.Verify {
		progress <- cli.ProgressUpdate{Index: idx, Value: 0.5}
		last := req.Params.Index + uint64(req.Count) - 1
		v, err := svc.Verify(ctx, family, req.Params, last)
		if err != nil {
			res.Err = err
		} else {
			res.Verify = &v
		}
	}
	res.Duration = time.Since(start)
	res.Sequence.Duration = cli.FormatExecutionDuration(res.Duration)
	return res
}

// jsonFamilyResult is the JSON rendering of a FamilyResult.
type jsonFamilyResult struct {
	Family   string                 `json:"family"`
	Sequence *models.SequenceResult `json:"sequence,omitempty"`
	Verify   *models.VerifyResult   `json:"verify,omitempty"`
	Duration string                 `json:"duration"`
	Error    string                 `json:"error,omitempty"`
}

// AnalyzeResults renders the family results and returns the process exit
// code. Listings come first, followed by a summary table when more than one
// family ran. A failed family yields the exit code of its error, and a
// verification mismatch yields ExitErrorMismatch.
//
// Parameters:
//   - results: The results returned by ExecuteSequences.
//   - cfg: The application configuration (output format).
//   - out: The io.Writer for the report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeResults(results []FamilyResult, cfg config.AppConfig, out io.Writer) int {
	outCfg := cli.OutputConfig{JSON: cfg.JSONOutput, Quiet: cfg.Quiet}

	var firstErr error
	var mismatch *apperrors.MismatchError
	for _, r := range results {
		if r.Err != nil && firstErr == nil {
			firstErr = r.Err
		}
		if r.Verify != nil && !r.Verify.Match && mismatch == nil {
			mismatch = &apperrors.MismatchError{Family: r.Family, Index: r.Verify.Index, Seek: r.Verify.Seek, Walk: r.Verify.Walk}
		}
	}

	if outCfg.JSON {
		if err := cli.WriteJSON(out, toJSON(results)); err != nil {
			return apperrors.ExitErrorGeneric
		}
		return exitCode(firstErr, mismatch)
	}

	for _, r := range results {
		if r.Err != nil {
			continue
		}
		_ = cli.DisplaySequence(out, r.Sequence, outCfg)
		if r.Verify != nil && !outCfg.Quiet {
			_ = cli.DisplayVerify(out, *r.Verify, outCfg)
		}
	}
	if len(results) > 1 && !outCfg.Quiet {
		printSummary(results, out)
	}

	switch {
	case firstErr != nil:
		return apperrors.HandleError(firstErr, 0, out, ui.Palette{})
	case mismatch != nil:
		return apperrors.HandleError(*mismatch, 0, out, ui.Palette{})
	}
	return apperrors.ExitSuccess
}

func exitCode(firstErr error, mismatch *apperrors.MismatchError) int {
	if firstErr != nil {
		return apperrors.ExitCode(firstErr)
	}
	if mismatch != nil {
		return apperrors.ExitErrorMismatch
	}
	return apperrors.ExitSuccess
}

func toJSON(results []FamilyResult) []jsonFamilyResult {
	out := make([]jsonFamilyResult, len(results))
	for i, r := range results {
		out[i] = jsonFamilyResult{
			Family:   r.Family,
			Verify:   r.Verify,
			Duration: cli.FormatExecutionDuration(r.Duration),
		}
		if r.Err != nil {
			out[i].Error = r.Err.Error()
		} else {
			out[i].Sequence = &r.Sequence
		}
	}
	return out
}

func printSummary(results []FamilyResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Family Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "%sFamily%s\t%sLast term%s\t%sDuration%s\t%sStatus%s\n",
		ui.ColorBold(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(),
		ui.ColorBold(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset())

	for _, r := range results {
		last := "-"
		if n := len(r.Sequence.Terms); n > 0 {
			last = r.Sequence.Terms[n-1].Value
		}
		var status string
		switch {
		case r.Err != nil:
			status = ui.Paint(ui.ColorError(), fmt.Sprintf("Failure (%v)", r.Err))
		case r.Verify != nil && !r.Verify.Match:
			status = ui.Paint(ui.ColorError(), "Mismatch")
		case r.Verify != nil:
			status = ui.Paint(ui.ColorSuccess(), "Verified")
		default:
			status = ui.Paint(ui.ColorSuccess(), "Success")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			ui.Paint(ui.ColorFamily(), r.Family),
			ui.Paint(ui.ColorValue(), last),
			ui.Paint(ui.ColorWarning(), cli.FormatExecutionDuration(r.Duration)),
			status)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(out, "Warning: failed to flush tabwriter: %v\n", err)
	}
}
