package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a leveled logger stamping each line with a
// centisecond clock, e.g. "14:32:01.45".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// startTimer returns a func that logs msg at info level together with the
// time elapsed since startTimer was called.
func startTimer(l *log.Logger) func(msg string, keyvals ...any) {
	start := time.Now()
	return func(msg string, keyvals ...any) {
		elapsed := time.Since(start).Round(time.Millisecond)
		l.Info(msg, append(keyvals, "elapsed", elapsed)...)
	}
}
