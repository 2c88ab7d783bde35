package ui

import (
	"os"
	"testing"
)

// Theme state is global, so these tests do not run in parallel.

func TestInitTheme(t *testing.T) {
	orig := GetCurrentTheme()
	t.Cleanup(func() { SetCurrentTheme(orig) })

	tests := []struct {
		name    string
		noColor bool
		env     map[string]string
		want    string
	}{
		{name: "flag disables colour", noColor: true, want: "none"},
		{name: "NO_COLOR disables colour", env: map[string]string{"NO_COLOR": "1"}, want: "none"},
		{name: "light theme from environment", env: map[string]string{"SEQCALC_THEME": "light"}, want: "light"},
		{name: "default is dark", want: "dark"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range []string{"NO_COLOR", "SEQCALC_THEME"} {
				t.Setenv(k, "")
				os.Unsetenv(k)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			InitTheme(tt.noColor)
			if got := GetCurrentTheme().Name; got != tt.want {
				t.Errorf("theme = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSetTheme(t *testing.T) {
	orig := GetCurrentTheme()
	t.Cleanup(func() { SetCurrentTheme(orig) })

	for name, want := range map[string]string{"light": "light", "none": "none", "bogus": "dark"} {
		SetTheme(name)
		if got := GetCurrentTheme().Name; got != want {
			t.Errorf("SetTheme(%q) -> %q, want %q", name, got, want)
		}
	}
}

func TestPaint(t *testing.T) {
	orig := GetCurrentTheme()
	t.Cleanup(func() { SetCurrentTheme(orig) })

	SetCurrentTheme(NoColorTheme)
	if got := Paint(ColorValue(), "55"); got != "55" {
		t.Errorf("Paint without colours = %q", got)
	}
	if (Palette{}).Yellow() != "" {
		t.Error("Palette should be empty under NoColorTheme")
	}

	SetCurrentTheme(DarkTheme)
	if got := Paint(ColorValue(), "55"); got != DarkTheme.Value+"55"+DarkTheme.Reset {
		t.Errorf("Paint with colours = %q", got)
	}
	if (Palette{}).Red() != DarkTheme.Error {
		t.Error("Palette.Red should map to the error colour")
	}
}
