package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewRotatingWriter(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "logs", "seqcalc.log")

	w, err := NewRotatingWriter(path)
	if err != nil {
		t.Fatalf("NewRotatingWriter: %v", err)
	}
	logger := NewLogger(w, "test", "info")
	logger.Info("written to file", Family("catalan"))
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), `"family":"catalan"`) {
		t.Errorf("log file content = %q", data)
	}
}

func TestNewRotatingWriter_EmptyPath(t *testing.T) {
	t.Parallel()
	if _, err := NewRotatingWriter(""); err == nil {
		t.Error("expected an error for an empty path")
	}
}
