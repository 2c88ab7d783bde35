package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/agbru/seqcalc/internal/ui"
	"github.com/agbru/seqcalc/pkg/models"
)

// OutputConfig selects how results are rendered.
type OutputConfig struct {
	// JSON writes one JSON document instead of text.
	JSON bool
	// Quiet prints bare values, one per line, for scripting.
	Quiet bool
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// render dispatches between JSON and the quiet and text renderers.
func render(out io.Writer, cfg OutputConfig, v any, quiet, text func()) error {
	switch {
	case cfg.JSON:
		return WriteJSON(out, v)
	case cfg.Quiet:
		quiet()
	default:
		text()
	}
	return nil
}

// DisplaySequence renders a listing of consecutive terms.
func DisplaySequence(out io.Writer, res models.SequenceResult, cfg OutputConfig) error {
	return render(out, cfg, res,
		func() {
			for _, t := range res.Terms {
				fmt.Fprintln(out, t.Value)
			}
		},
		func() {
			kind := "exact"
			if !res.Exact {
				kind = "floating point"
			}
			fmt.Fprintf(out, "%s%s%s (%s)\n", ui.ColorFamily(), res.Family, ui.ColorReset(), kind)
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
			for _, t := range res.Terms {
				fmt.Fprintf(tw, "%s%d%s\t%s%s%s\t\n",
					ui.ColorIndex(), t.Index, ui.ColorReset(),
					ui.ColorValue(), formatNumberString(t.Value), ui.ColorReset())
			}
			tw.Flush()
		})
}

// DisplayVerify renders the outcome of a seek-versus-walk check.
func DisplayVerify(out io.Writer, v models.VerifyResult, cfg OutputConfig) error {
	return render(out, cfg, v,
		func() { fmt.Fprintln(out, v.Match) },
		func() {
			status := ui.Paint(ui.ColorSuccess(), "OK")
			if !v.Match {
				status = ui.Paint(ui.ColorError(), "MISMATCH")
			}
			fmt.Fprintf(out, "Verify %s at index %s%d%s: seek=%s walk=%s %s\n",
				ui.Paint(ui.ColorFamily(), v.Family),
				ui.ColorIndex(), v.Index, ui.ColorReset(),
				v.Seek, v.Walk, status)
		})
}

// DisplayTriangle renders Pascal's triangle with every row centred on the
// widest one.
func DisplayTriangle(out io.Writer, res models.TriangleResult, cfg OutputConfig) error {
	lines := make([]string, len(res.Rows))
	width := 0
	for i, row := range res.Rows {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = strconv.FormatUint(v, 10)
		}
		lines[i] = strings.Join(cells, " ")
		width = max(width, len(lines[i]))
	}
	return render(out, cfg, res,
		func() {
			for _, l := range lines {
				fmt.Fprintln(out, l)
			}
		},
		func() {
			for _, l := range lines {
				pad := (width - len(l)) / 2
				fmt.Fprintf(out, "%s%s%s%s\n", strings.Repeat(" ", pad), ui.ColorValue(), l, ui.ColorReset())
			}
		})
}

// DisplayBinomial renders C(n, k) from both variants.
func DisplayBinomial(out io.Writer, res models.BinomialResult, cfg OutputConfig) error {
	return render(out, cfg, res,
		func() { fmt.Fprintln(out, res.Table) },
		func() {
			fmt.Fprintf(out, "C(%s%d%s, %s%d%s) = %s%s%s\n",
				ui.ColorIndex(), res.N, ui.ColorReset(),
				ui.ColorIndex(), res.K, ui.ColorReset(),
				ui.ColorValue(), formatNumberString(res.Table), ui.ColorReset())
			fmt.Fprintf(out, "  table: %s  iterative: %s  %s\n",
				res.Table, res.Iterative, consistency(res.Consistent))
		})
}

// DisplayJosephus renders the survivor from both variants.
func DisplayJosephus(out io.Writer, res models.JosephusResult, cfg OutputConfig) error {
	return render(out, cfg, res,
		func() { fmt.Fprintln(out, res.Recursive) },
		func() {
			fmt.Fprintf(out, "Josephus(k=%s%d%s, n=%s%d%s) survivor = %s%d%s (0-based)\n",
				ui.ColorIndex(), res.K, ui.ColorReset(),
				ui.ColorIndex(), res.N, ui.ColorReset(),
				ui.ColorValue(), res.Recursive, ui.ColorReset())
			fmt.Fprintf(out, "  recursive: %d  iterative: %d  %s\n",
				res.Recursive, res.Iterative, consistency(res.Consistent))
		})
}

// DisplayHanoiSummary renders the move count after the move log has been
// streamed.
func DisplayHanoiSummary(out io.Writer, res models.HanoiResult, cfg OutputConfig) error {
	return render(out, cfg, res,
		func() { fmt.Fprintln(out, res.Count) },
		func() {
			fmt.Fprintf(out, "%s%s%s Hanoi with %d disks: %s%d%s moves\n",
				ui.ColorFamily(), res.Variant, ui.ColorReset(),
				res.Disks, ui.ColorValue(), res.Count, ui.ColorReset())
		})
}

func consistency(ok bool) string {
	if ok {
		return ui.Paint(ui.ColorSuccess(), "consistent")
	}
	return ui.Paint(ui.ColorError(), "INCONSISTENT")
}

// formatNumberString inserts thousand separators into an integer string.
// Strings that are not plain integers, such as float terms, are returned
// unchanged.
func formatNumberString(s string) string {
	if len(s) == 0 {
		return ""
	}
	prefix := ""
	if s[0] == '-' {
		prefix = "-"
		s = s[1:]
	}
	if strings.ContainsFunc(s, func(r rune) bool { return r < '0' || r > '9' }) {
		return prefix + s
	}
	n := len(s)
	if n <= 3 {
		return prefix + s
	}

	var builder strings.Builder
	builder.Grow(len(prefix) + n + (n-1)/3)
	builder.WriteString(prefix)

	firstGroupLen := n % 3
	if firstGroupLen == 0 {
		firstGroupLen = 3
	}
	builder.WriteString(s[:firstGroupLen])
	for i := firstGroupLen; i < n; i += 3 {
		builder.WriteByte(',')
		builder.WriteString(s[i : i+3])
	}
	return builder.String()
}
