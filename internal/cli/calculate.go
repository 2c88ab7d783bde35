package cli

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"strings"

	"github.com/agbru/seqcalc/internal/config"
	"github.com/agbru/seqcalc/internal/ui"
)

// ResolveFamilies returns the families a sequence run covers: every
// registered family for "all", the named one when it is registered, and
// nil otherwise. The result is sorted.
func ResolveFamilies(family string, registered []string) []string {
	if family == config.FamilyAll {
		out := slices.Clone(registered)
		slices.Sort(out)
		return out
	}
	if slices.Contains(registered, family) {
		return []string{family}
	}
	return nil
}

// PrintExecutionConfig displays what is about to be computed.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	switch cfg.Mode {
	case config.ModeSequence:
		fmt.Fprintf(out, "Listing %s%d%s terms of %s from index %s%d%s",
			ui.ColorValue(), cfg.Count, ui.ColorReset(),
			ui.Paint(ui.ColorFamily(), cfg.Family),
			ui.ColorIndex(), cfg.Index, ui.ColorReset())
		if cfg.Verify {
			fmt.Fprintf(out, " with verification")
		}
		fmt.Fprintln(out, ".")
		fmt.Fprintf(out, "Progression parameters: start=%g step=%g ratio=%g.\n", cfg.Start, cfg.Step, cfg.Ratio)
	case config.ModePascal:
		fmt.Fprintf(out, "Building %s%d%s rows of Pascal's triangle.\n", ui.ColorValue(), cfg.Rows, ui.ColorReset())
	case config.ModeBinomial:
		fmt.Fprintf(out, "Computing C(%d, %d).\n", cfg.N, cfg.K)
	case config.ModeJosephus:
		fmt.Fprintf(out, "Solving Josephus for k=%d, n=%d.\n", cfg.K, cfg.N)
	case config.ModeHanoi:
		fmt.Fprintf(out, "Solving %s Hanoi with %d disks.\n", cfg.Variant, cfg.N)
	}
	fmt.Fprintf(out, "Timeout %s%s%s, %d logical processors, Go %s.\n",
		ui.ColorWarning(), cfg.Timeout, ui.ColorReset(), runtime.NumCPU(), runtime.Version())
}

// PrintExecutionMode announces whether one family or several are run.
func PrintExecutionMode(families []string, out io.Writer) {
	if len(families) > 1 {
		fmt.Fprintf(out, "Execution mode: parallel run of %d families (%s).\n", len(families), strings.Join(families, ", "))
	} else if len(families) == 1 {
		fmt.Fprintf(out, "Execution mode: single family %s.\n", ui.Paint(ui.ColorFamily(), families[0]))
	}
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
