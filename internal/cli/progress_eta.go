package cli

import (
	"fmt"
	"time"
)

// maxETA caps the displayed estimate.
const maxETA = 24 * time.Hour

// ProgressWithETA extends ProgressState with a smoothed progress rate from
// which the remaining time is estimated.
type ProgressWithETA struct {
	*ProgressState
	startTime    time.Time
	lastUpdate   time.Time
	lastProgress float64
	progressRate float64 // progress per second
}

// NewProgressWithETA creates a tracker for numRuns runs.
func NewProgressWithETA(numRuns int) *ProgressWithETA {
	now := time.Now()
	return &ProgressWithETA{
		ProgressState: NewProgressState(numRuns),
		startTime:     now,
		lastUpdate:    now,
	}
}

// UpdateWithETA records a progress value and returns the new average and
// the estimated time remaining, or 0 while no rate is known yet.
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (progress float64, eta time.Duration) {
	p.Update(index, value)
	progress = p.CalculateAverage()

	now := time.Now()
	elapsed := now.Sub(p.startTime)
	if elapsed < 100*time.Millisecond || progress <= 0.001 {
		p.lastUpdate = now
		p.lastProgress = progress
		return progress, 0
	}

	if sinceUpdate := now.Sub(p.lastUpdate).Seconds(); sinceUpdate > 0.05 {
		if delta := progress - p.lastProgress; delta > 0 {
			instant := delta / sinceUpdate
			if p.progressRate > 0 {
				// Exponential smoothing: 70% old rate, 30% new rate.
				p.progressRate = 0.7*p.progressRate + 0.3*instant
			} else {
				p.progressRate = progress / elapsed.Seconds()
			}
		}
		p.lastUpdate = now
		p.lastProgress = progress
	}

	return progress, p.GetETA()
}

// GetETA returns the current estimate without recording progress.
func (p *ProgressWithETA) GetETA() time.Duration {
	progress := p.CalculateAverage()
	if p.progressRate <= 0 || progress >= 1.0 {
		return 0
	}
	eta := time.Duration((1.0 - progress) / p.progressRate * float64(time.Second))
	return min(eta, maxETA)
}

// FormatETA formats an estimate as "< 1s", "42s", "2m30s" or "1h15m".
// A non-positive estimate reads "calculating...".
func FormatETA(eta time.Duration) string {
	switch {
	case eta <= 0:
		return "calculating..."
	case eta < time.Second:
		return "< 1s"
	case eta < time.Minute:
		return fmt.Sprintf("%ds", int(eta.Seconds()))
	case eta < time.Hour:
		minutes := int(eta.Minutes())
		if seconds := int(eta.Seconds()) % 60; seconds > 0 {
			return fmt.Sprintf("%dm%ds", minutes, seconds)
		}
		return fmt.Sprintf("%dm", minutes)
	}
	hours := int(eta.Hours())
	if minutes := int(eta.Minutes()) % 60; minutes > 0 {
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
	return fmt.Sprintf("%dh", hours)
}

// FormatProgressBarWithETA renders "45.00% [████░░░░] ETA: 2m30s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("%6.2f%% [%s] ETA: %s", progress*100, progressBar(progress, width), FormatETA(eta))
}
