package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name      string
		level     log.Level
		wantDebug bool
	}{
		{"info hides debug", LogInfo, false},
		{"debug shows debug", LogDebug, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			logger.Info("loaded graph", "nodes", 4)
			logger.Debug("cache lookup", "format", "html")

			out := buf.String()
			if !strings.Contains(out, "loaded graph") || !strings.Contains(out, "nodes=4") {
				t.Errorf("info record missing from %q", out)
			}
			if got := strings.Contains(out, "cache lookup"); got != tt.wantDebug {
				t.Errorf("debug record present = %v, want %v", got, tt.wantDebug)
			}
		})
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)

	c.Logger.Debug("hidden")
	c.SetLogLevel(LogDebug)
	c.Logger.Debug("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug record written before SetLogLevel")
	}
	if !strings.Contains(out, "shown") {
		t.Error("debug record missing after SetLogLevel")
	}
	// Caller reporting is on at debug level.
	if !strings.Contains(out, "log_test.go") {
		t.Errorf("debug output should carry the caller, got %q", out)
	}
}

func TestTimed(t *testing.T) {
	var buf bytes.Buffer
	done := timed(newLogger(&buf, LogInfo), "rendered")
	done("input", "speech.txt")

	out := buf.String()
	for _, want := range []string{"rendered", "elapsed=", "input=speech.txt"} {
		if !strings.Contains(out, want) {
			t.Errorf("timed output %q missing %q", out, want)
		}
	}
}
