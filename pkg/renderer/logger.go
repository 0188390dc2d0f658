package renderer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/exp/slog"
)

// SlogLogger adapts a structured slog logger to core.Logger
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger wraps an existing slog logger
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	return &SlogLogger{logger: logger}
}

// NewDefaultLogger logs text records to stdout
func NewDefaultLogger(debug bool) *SlogLogger {
	return NewTextLogger(os.Stdout, debug)
}

// NewTextLogger logs text records to w
func NewTextLogger(w io.Writer, debug bool) *SlogLogger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return NewSlogLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// Printf implements core.Logger
func (l *SlogLogger) Printf(format string, args ...interface{}) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// Info logs msg with structured key/value pairs
func (l *SlogLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

// Debug logs msg with structured key/value pairs at debug level
func (l *SlogLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

// With returns a logger that adds args to every record
func (l *SlogLogger) With(args ...any) *SlogLogger {
	return &SlogLogger{logger: l.logger.With(args...)}
}
