// Package logging holds the process-wide trace switch and builds the zerolog
// loggers handed to the slider model and the demo app.
package logging

import (
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

var traceLogEnabled atomic.Bool

// SetTraceLoggingEnabled turns trace-level output on or off for loggers built afterwards.
func SetTraceLoggingEnabled(enabled bool) {
	traceLogEnabled.Store(enabled)
}

// IsTraceLoggingEnabled reports the current trace switch.
func IsTraceLoggingEnabled() bool {
	return traceLogEnabled.Load()
}

// Level is Trace while tracing is enabled and Info otherwise.
func Level() zerolog.Level {
	if IsTraceLoggingEnabled() {
		return zerolog.TraceLevel
	}
	return zerolog.InfoLevel
}

// New returns a human-readable console logger writing to w (stderr when nil).
func New(w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: true}
	return zerolog.New(cw).Level(Level()).With().Timestamp().Logger()
}

// Component derives a logger tagged with the component name.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}
