package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger writes timestamped records to w. At debug level records also
// carry the calling file and line.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		ReportCaller:    level <= log.DebugLevel,
	})
}

// timed starts a clock for one step. The returned func logs msg at info
// level with the elapsed time and any extra key-value pairs.
func timed(logger *log.Logger, msg string) func(keyvals ...any) {
	start := time.Now()
	return func(keyvals ...any) {
		kv := append([]any{"elapsed", time.Since(start).Round(time.Millisecond)}, keyvals...)
		logger.Info(msg, kv...)
	}
}
