package cli

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"
)

// MockSpinner records the calls DisplayProgress makes.
type MockSpinner struct {
	mu      sync.Mutex
	started bool
	stopped bool
	suffix  string
}

func (m *MockSpinner) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = true
}

func (m *MockSpinner) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
}

func (m *MockSpinner) UpdateSuffix(suffix string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suffix = suffix
}

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{500 * time.Nanosecond, "0µs"},
		{10 * time.Microsecond, "10µs"},
		{10 * time.Millisecond, "10ms"},
		{2 * time.Second, "2s"},
	}

	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.d); got != tt.expected {
			t.Errorf("FormatExecutionDuration(%v) = %s; want %s", tt.d, got, tt.expected)
		}
	}
}

func TestProgressBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		progress float64
		length   int
		expected string
	}{
		{0.0, 10, "░░░░░░░░░░"},
		{0.5, 10, "█████░░░░░"},
		{1.0, 10, "██████████"},
		{1.2, 10, "██████████"},
		{-0.1, 10, "░░░░░░░░░░"},
	}

	for _, tt := range tests {
		if got := progressBar(tt.progress, tt.length); got != tt.expected {
			t.Errorf("progressBar(%f, %d) = %s; want %s", tt.progress, tt.length, got, tt.expected)
		}
	}
}

func TestProgressState(t *testing.T) {
	t.Parallel()
	ps := NewProgressState(4)
	ps.Update(0, 1.0)
	ps.Update(1, 0.5)
	ps.Update(7, 1.0) // out of range, ignored
	ps.Update(-1, 1.0)

	if got := ps.CalculateAverage(); got != 0.375 {
		t.Errorf("CalculateAverage() = %f, want 0.375", got)
	}
	if got := NewProgressState(0).CalculateAverage(); got != 0 {
		t.Errorf("empty CalculateAverage() = %f, want 0", got)
	}
}

func TestFormatETA(t *testing.T) {
	t.Parallel()
	tests := []struct {
		eta      time.Duration
		expected string
	}{
		{0, "calculating..."},
		{-time.Second, "calculating..."},
		{500 * time.Millisecond, "< 1s"},
		{42 * time.Second, "42s"},
		{2 * time.Minute, "2m"},
		{150 * time.Second, "2m30s"},
		{time.Hour, "1h"},
		{75 * time.Minute, "1h15m"},
	}
	for _, tt := range tests {
		if got := FormatETA(tt.eta); got != tt.expected {
			t.Errorf("FormatETA(%v) = %q, want %q", tt.eta, got, tt.expected)
		}
	}
}

func TestProgressWithETA(t *testing.T) {
	t.Parallel()
	p := NewProgressWithETA(2)

	progress, eta := p.UpdateWithETA(0, 0.5)
	if progress != 0.25 {
		t.Errorf("progress = %f, want 0.25", progress)
	}
	if eta != 0 {
		t.Errorf("ETA before any rate is known = %v, want 0", eta)
	}
	if got := p.GetETA(); got != 0 {
		t.Errorf("GetETA() = %v, want 0", got)
	}

	p.progressRate = 0.5
	if got := p.GetETA(); got != 1500*time.Millisecond {
		t.Errorf("GetETA() = %v, want 1.5s", got)
	}
	p.Update(0, 1.0)
	p.Update(1, 1.0)
	if got := p.GetETA(); got != 0 {
		t.Errorf("GetETA() when complete = %v, want 0", got)
	}
}

func TestFormatProgressBarWithETA(t *testing.T) {
	t.Parallel()
	got := FormatProgressBarWithETA(0.5, 42*time.Second, 4)
	if want := " 50.00% [██░░] ETA: 42s"; got != want {
		t.Errorf("FormatProgressBarWithETA = %q, want %q", got, want)
	}
}

func TestRealSpinner(t *testing.T) {
	t.Parallel()
	rs := &realSpinner{spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(io.Discard))}
	rs.Start()
	rs.UpdateSuffix(" test")
	rs.Stop()
}

func TestIsTerminal(t *testing.T) {
	t.Parallel()
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("a buffer is not a terminal")
	}
}

func TestDisplayProgress(t *testing.T) {
	originalNewSpinner := newSpinner
	defer func() { newSpinner = originalNewSpinner }()

	mockS := &MockSpinner{}
	newSpinner = func(options ...spinner.Option) Spinner {
		return mockS
	}

	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan ProgressUpdate)
	var out bytes.Buffer

	go func() {
		progressChan <- ProgressUpdate{Index: 0, Value: 0.5}
		progressChan <- ProgressUpdate{Index: 1, Value: 1.0}
		close(progressChan)
	}()

	DisplayProgress(&wg, progressChan, 2, &out)
	wg.Wait()

	if !mockS.started || !mockS.stopped {
		t.Errorf("spinner started=%v stopped=%v, want both", mockS.started, mockS.stopped)
	}
	if !strings.Contains(out.String(), "Avg progress: 100.00%") {
		t.Errorf("final line missing, got %q", out.String())
	}
}

func TestDisplayProgress_ZeroRuns(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan ProgressUpdate, 1)
	progressChan <- ProgressUpdate{Value: 1}
	close(progressChan)

	var out bytes.Buffer
	DisplayProgress(&wg, progressChan, 0, &out)
	wg.Wait()
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}

func TestDrainProgress(t *testing.T) {
	t.Parallel()
	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan ProgressUpdate, 2)
	progressChan <- ProgressUpdate{Value: 0.5}
	progressChan <- ProgressUpdate{Value: 1}
	close(progressChan)
	DrainProgress(&wg, progressChan)
	wg.Wait()
}
