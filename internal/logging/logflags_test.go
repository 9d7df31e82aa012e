package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestLevelFollowsTraceSwitch(t *testing.T) {
	defer SetTraceLoggingEnabled(false)

	SetTraceLoggingEnabled(false)
	if got := Level(); got != zerolog.InfoLevel {
		t.Fatalf("Level() = %v, want info", got)
	}
	SetTraceLoggingEnabled(true)
	if got := Level(); got != zerolog.TraceLevel {
		t.Fatalf("Level() = %v, want trace", got)
	}
}

func TestNewWritesComponentField(t *testing.T) {
	defer SetTraceLoggingEnabled(false)
	SetTraceLoggingEnabled(false)

	var buf bytes.Buffer
	l := Component(New(&buf), "slider")
	l.Debug().Msg("hidden")
	l.Info().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line should be filtered at info level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "component=slider") {
		t.Fatalf("unexpected output: %q", out)
	}
}
