// Package logging provides the structured logger used by the seqcalc
// service and HTTP server. Components depend on the Logger interface; the
// binary wires a zerolog backend, tests use Nop or a standard log.Logger.
package logging

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger is the logging interface used across the application.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	// Error logs msg with err attached under the "error" key.
	Error(msg string, err error, fields ...Field)
	// With returns a child logger that adds fields to every entry.
	With(fields ...Field) Logger
	// Printf exists for code written against log.Logger.
	Printf(format string, args ...any)
}

// Field is a key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value any
}

func String(key, value string) Field         { return Field{Key: key, Value: value} }
func Int(key string, value int) Field         { return Field{Key: key, Value: value} }
func Int64(key string, value int64) Field     { return Field{Key: key, Value: value} }
func Uint64(key string, value uint64) Field   { return Field{Key: key, Value: value} }
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }
func Bool(key string, value bool) Field       { return Field{Key: key, Value: value} }
func Err(err error) Field                     { return Field{Key: "error", Value: err} }

// Family tags an entry with a sequence family name.
func Family(name string) Field { return String("family", name) }

// ─────────────────────────────────────────────────────────────────────────────
// zerolog backend
// ─────────────────────────────────────────────────────────────────────────────

// ZerologAdapter adapts a zerolog.Logger to the Logger interface.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter wraps an existing zerolog.Logger.
func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// NewLogger creates a JSON logger writing to w, tagged with component and
// filtered at level ("debug", "info", "warn", "error"). An empty or
// unknown level means info.
func NewLogger(w io.Writer, component, level string) *ZerologAdapter {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return NewZerologAdapter(
		zerolog.New(w).Level(lvl).With().Timestamp().Str("component", component).Logger(),
	)
}

// NewDefaultLogger creates an info-level logger on stderr.
func NewDefaultLogger() *ZerologAdapter {
	return NewLogger(os.Stderr, "seqcalc", "info")
}

func applyFields(event *zerolog.Event, fields []Field) *zerolog.Event {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			event = event.Str(f.Key, v)
		case int:
			event = event.Int(f.Key, v)
		case int64:
			event = event.Int64(f.Key, v)
		case uint64:
			event = event.Uint64(f.Key, v)
		case float64:
			event = event.Float64(f.Key, v)
		case bool:
			event = event.Bool(f.Key, v)
		case error:
			event = event.AnErr(f.Key, v)
		default:
			event = event.Interface(f.Key, v)
		}
	}
	return event
}

func (z *ZerologAdapter) Debug(msg string, fields ...Field) {
	applyFields(z.logger.Debug(), fields).Msg(msg)
}

func (z *ZerologAdapter) Info(msg string, fields ...Field) {
	applyFields(z.logger.Info(), fields).Msg(msg)
}

func (z *ZerologAdapter) Warn(msg string, fields ...Field) {
	applyFields(z.logger.Warn(), fields).Msg(msg)
}

func (z *ZerologAdapter) Error(msg string, err error, fields ...Field) {
	applyFields(z.logger.Error().Err(err), fields).Msg(msg)
}

func (z *ZerologAdapter) With(fields ...Field) Logger {
	ctx := z.logger.With()
	for _, f := range fields {
		ctx = ctx.Interface(f.Key, f.Value)
	}
	return &ZerologAdapter{logger: ctx.Logger()}
}

func (z *ZerologAdapter) Printf(format string, args ...any) {
	z.logger.Info().Msgf(format, args...)
}

// ─────────────────────────────────────────────────────────────────────────────
// log.Logger backend
// ─────────────────────────────────────────────────────────────────────────────

// StdLoggerAdapter writes entries as "[LEVEL] msg key=value ..." lines to a
// standard log.Logger.
type StdLoggerAdapter struct {
	logger *stdlog.Logger
	fields []Field
}

// NewStdLoggerAdapter creates a Logger backed by a standard log.Logger.
func NewStdLoggerAdapter(logger *stdlog.Logger) *StdLoggerAdapter {
	return &StdLoggerAdapter{logger: logger}
}

func (s *StdLoggerAdapter) line(level, msg string, fields []Field) {
	var b strings.Builder
	b.WriteString("[" + level + "] " + msg)
	for _, f := range append(s.fields[:len(s.fields):len(s.fields)], fields...) {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	s.logger.Println(b.String())
}

func (s *StdLoggerAdapter) Debug(msg string, fields ...Field) { s.line("DEBUG", msg, fields) }
func (s *StdLoggerAdapter) Info(msg string, fields ...Field)  { s.line("INFO", msg, fields) }
func (s *StdLoggerAdapter) Warn(msg string, fields ...Field)  { s.line("WARN", msg, fields) }

func (s *StdLoggerAdapter) Error(msg string, err error, fields ...Field) {
	s.line("ERROR", msg, append([]Field{Err(err)}, fields...))
}

func (s *StdLoggerAdapter) With(fields ...Field) Logger {
	return &StdLoggerAdapter{logger: s.logger, fields: append(s.fields[:len(s.fields):len(s.fields)], fields...)}
}

func (s *StdLoggerAdapter) Printf(format string, args ...any) {
	s.logger.Printf(format, args...)
}

// ─────────────────────────────────────────────────────────────────────────────
// Discard
// ─────────────────────────────────────────────────────────────────────────────

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return NewZerologAdapter(zerolog.Nop())
}
