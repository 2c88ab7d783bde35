package logging

import (
	"errors"
	"io"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation defaults for file sinks.
const (
	DefaultMaxSizeMB  = 10
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 28
)

// NewRotatingWriter returns a writer appending to path that rolls the file
// over once it reaches DefaultMaxSizeMB, keeping DefaultMaxBackups
// compressed backups. The caller closes it.
func NewRotatingWriter(path string) (io.WriteCloser, error) {
	if path == "" {
		return nil, errors.New("log file path is empty")
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    DefaultMaxSizeMB,
		MaxBackups: DefaultMaxBackups,
		MaxAge:     DefaultMaxAgeDays,
		Compress:   true,
	}, nil
}
