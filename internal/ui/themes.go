// Package ui holds the colour themes used by the CLI, the REPL and the
// usage text. Colours are plain ANSI escape sequences; the NoColor theme
// turns every one of them into the empty string.
package ui

import (
	"os"
	"sync"
)

// Theme maps the roles that appear in seqcalc output to ANSI codes.
type Theme struct {
	// Name is the identifier accepted by SetTheme.
	Name string
	// Family colours sequence family names and mode headings.
	Family string
	// Index colours positions such as "n=42".
	Index string
	// Value colours computed terms and coefficients.
	Value string
	// Success marks completed runs and matching verifications.
	Success string
	// Warning marks durations, truncation and cancellation.
	Warning string
	// Error marks failures and mismatches.
	Error string
	// Muted is used for hints and secondary text.
	Muted string
	Bold  string
	Reset string
}

var (
	// DarkTheme is tuned for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:    "dark",
		Family:  "\033[38;5;39m",  // bright blue
		Index:   "\033[38;5;141m", // purple
		Value:   "\033[38;5;82m",  // bright green
		Success: "\033[38;5;82m",
		Warning: "\033[38;5;220m", // yellow
		Error:   "\033[38;5;196m", // red
		Muted:   "\033[38;5;245m", // grey
		Bold:    "\033[1m",
		Reset:   "\033[0m",
	}

	// LightTheme uses darker tones for light backgrounds.
	LightTheme = Theme{
		Name:    "light",
		Family:  "\033[38;5;27m",
		Index:   "\033[38;5;54m",
		Value:   "\033[38;5;28m",
		Success: "\033[38;5;28m",
		Warning: "\033[38;5;130m",
		Error:   "\033[38;5;124m",
		Muted:   "\033[38;5;240m",
		Bold:    "\033[1m",
		Reset:   "\033[0m",
	}

	// NoColorTheme disables colour output.
	NoColorTheme = Theme{Name: "none"}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme activates a theme by name ("dark", "light" or "none"). Unknown
// names select the dark theme.
func SetTheme(name string) {
	switch name {
	case LightTheme.Name:
		SetCurrentTheme(LightTheme)
	case NoColorTheme.Name:
		SetCurrentTheme(NoColorTheme)
	default:
		SetCurrentTheme(DarkTheme)
	}
}

// InitTheme picks the startup theme. Colours are disabled when noColor is
// set or when the NO_COLOR environment variable exists (https://no-color.org/).
// Otherwise SEQCALC_THEME may select "light"; the default is dark.
func InitTheme(noColor bool) {
	if noColor {
		SetCurrentTheme(NoColorTheme)
		return
	}
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetTheme(os.Getenv("SEQCALC_THEME"))
}
