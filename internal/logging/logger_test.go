package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	stdlog "log"
	"strings"
	"testing"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid JSON log line %q: %v", line, err)
		}
		entries = append(entries, m)
	}
	return entries
}

func TestZerologAdapter_Fields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewLogger(&buf, "service", "debug")

	log.Debug("seek", Family("lucas"), Uint64("index", 42), Int("count", 3), Bool("exact", true))
	log.Error("write failed", errors.New("disk full"), String("op", "hanoi"))

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	first := entries[0]
	if first["level"] != "debug" || first["message"] != "seek" || first["component"] != "service" {
		t.Errorf("unexpected first entry: %v", first)
	}
	if first["family"] != "lucas" || first["index"] != float64(42) || first["exact"] != true {
		t.Errorf("fields missing from first entry: %v", first)
	}
	if entries[1]["error"] != "disk full" || entries[1]["op"] != "hanoi" {
		t.Errorf("unexpected error entry: %v", entries[1])
	}
}

func TestZerologAdapter_LevelFilter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewLogger(&buf, "server", "warn")
	log.Debug("hidden")
	log.Info("hidden")
	log.Warn("shown")

	entries := decodeLines(t, &buf)
	if len(entries) != 1 || entries[0]["message"] != "shown" {
		t.Errorf("entries = %v, want only the warning", entries)
	}

	// Unknown levels fall back to info.
	buf.Reset()
	NewLogger(&buf, "server", "verbose").Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug entry written at default level: %s", buf.String())
	}
}

func TestZerologAdapter_With(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	child := NewLogger(&buf, "repl", "info").With(String("session", "abc"))
	child.Info("cursor moved", Uint64("index", 7))

	entries := decodeLines(t, &buf)
	if len(entries) != 1 || entries[0]["session"] != "abc" || entries[0]["index"] != float64(7) {
		t.Errorf("entries = %v", entries)
	}
}

func TestStdLoggerAdapter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := NewStdLoggerAdapter(stdlog.New(&buf, "", 0))
	log := base.With(String("family", "catalan"))

	log.Info("request", Uint64("index", 5))
	log.Error("failed", errors.New("boom"))
	base.Warn("plain")

	want := "[INFO] request family=catalan index=5\n" +
		"[ERROR] failed family=catalan error=boom\n" +
		"[WARN] plain\n"
	if buf.String() != want {
		t.Errorf("output =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestNop(t *testing.T) {
	t.Parallel()

	log := Nop()
	log.Info("ignored")
	log.With(Int("x", 1)).Error("ignored", errors.New("x"))
}
