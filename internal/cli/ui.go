// Package cli renders seqcalc results for the terminal. It displays the
// progress of concurrent family runs, formats listings, tables and JSON,
// and hosts the interactive cursor REPL.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds for
// durations less than a second, and the default string representation otherwise.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

const (
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// ProgressUpdate reports the progress of one concurrent run.
type ProgressUpdate struct {
	// Index identifies the run, from 0 to the number of runs minus one.
	Index int
	// Value is the normalized progress, from 0.0 to 1.0.
	Value float64
}

// IsTerminal reports whether w is a terminal. The spinner is only shown on
// terminals.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Spinner abstracts a terminal spinner so that DisplayProgress can be tested
// without a real terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }
func (rs *realSpinner) Stop()  { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Suffix = suffix
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// ProgressState aggregates the progress of concurrent runs.
type ProgressState struct {
	progresses []float64
	numRuns    int
}

// NewProgressState creates a ProgressState tracking numRuns runs.
func NewProgressState(numRuns int) *ProgressState {
	return &ProgressState{
		progresses: make([]float64, numRuns),
		numRuns:    numRuns,
	}
}

// Update records a new progress value for run index. Out-of-range indices
// are ignored.
func (ps *ProgressState) Update(index int, value float64) {
	if index >= 0 && index < len(ps.progresses) {
		ps.progresses[index] = value
	}
}

// CalculateAverage returns the average progress across all runs.
func (ps *ProgressState) CalculateAverage() float64 {
	if ps.numRuns == 0 {
		return 0.0
	}
	var total float64
	for _, p := range ps.progresses {
		total += p
	}
	return total / float64(ps.numRuns)
}

// progressBar renders progress as a bar of length characters.
func progressBar(progress float64, length int) string {
	progress = max(0.0, min(progress, 1.0))
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length * 3)
	for i := range length {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

func progressLabel(numRuns int) string {
	if numRuns > 1 {
		return "Avg progress"
	}
	return "Progress"
}

// DisplayProgress shows a spinner and a progress bar until progressChan is
// closed, then prints a final 100% line. It is meant to run in its own
// goroutine and calls wg.Done when it returns.
//
// Parameters:
//   - wg: A WaitGroup to signal when the display routine is complete.
//   - progressChan: The channel receiving progress updates.
//   - numRuns: The number of runs contributing to the progress.
//   - out: The io.Writer to which the progress bar is rendered.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numRuns int, out io.Writer) {
	defer wg.Done()
	if numRuns <= 0 {
		for range progressChan {
		}
		return
	}

	state := NewProgressWithETA(numRuns)
	s := newSpinner(spinner.WithWriter(out))
	s.Start()
	spinnerStopped := false
	defer func() {
		if !spinnerStopped {
			s.Stop()
		}
	}()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	label := progressLabel(numRuns)
	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.Stop()
				spinnerStopped = true
				fmt.Fprintf(out, "%s: %s\n", label, FormatProgressBarWithETA(1.0, time.Nanosecond, ProgressBarWidth))
				return
			}
			state.UpdateWithETA(update.Index, update.Value)
		case <-ticker.C:
			s.UpdateSuffix(fmt.Sprintf(" %s: %s", label,
				FormatProgressBarWithETA(state.CalculateAverage(), state.GetETA(), ProgressBarWidth)))
		}
	}
}

// DrainProgress discards every update until progressChan is closed. It is
// used instead of DisplayProgress when the output is not a terminal.
func DrainProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate) {
	defer wg.Done()
	for range progressChan {
	}
}
