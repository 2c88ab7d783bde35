package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()
	families := []string{"catalan", "fibonacci"}

	tests := []struct {
		shell    string
		contains []string
	}{
		{"bash", []string{"complete -F _seqcalc_completions seqcalc", "-family|--family)", "catalan fibonacci all", "classic iterative restricted"}},
		{"zsh", []string{"#compdef seqcalc", "'-mode[What to compute]:mode:(sequence pascal binomial josephus hanoi)'"}},
		{"fish", []string{"complete -c seqcalc -o family -d 'Sequence family' -xa 'catalan fibonacci all'"}},
		{"powershell", []string{"Register-ArgumentCompleter -CommandName 'seqcalc'", "'-family' = @('catalan', 'fibonacci', 'all')"}},
		{"ps", []string{"Register-ArgumentCompleter"}},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell, families); err != nil {
				t.Fatalf("GenerateCompletion(%s) error: %v", tt.shell, err)
			}
			for _, s := range tt.contains {
				if !strings.Contains(buf.String(), s) {
					t.Errorf("%s script does not contain %q", tt.shell, s)
				}
			}
		})
	}
}

func TestGenerateCompletion_Unsupported(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := GenerateCompletion(&buf, "tcsh", nil)
	if err == nil || !strings.Contains(err.Error(), "unsupported shell: tcsh") {
		t.Errorf("expected unsupported shell error, got %v", err)
	}
	if buf.Len() != 0 {
		t.Error("nothing should be written for an unsupported shell")
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestGenerateCompletion_WriteError(t *testing.T) {
	t.Parallel()
	if err := GenerateCompletion(failWriter{}, "bash", nil); err == nil {
		t.Error("expected write error")
	}
}

func TestCompletionFlagsDoNotAliasFamilies(t *testing.T) {
	t.Parallel()
	families := make([]string, 1, 4)
	families[0] = "lucas"
	_ = completionFlags(families)
	if got := families[:2][1]; got != "" {
		t.Errorf("completionFlags wrote %q into the caller's backing array", got)
	}
}
