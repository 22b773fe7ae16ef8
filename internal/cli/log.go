// Package cli implements the aptgraph command-line interface.
//
// The root command runs one collection pass: it lists installed packages,
// builds one graph per dependency relation and writes the graphs into an
// output directory. The CLI is built using cobra and logs through
// charmbracelet/log on stderr; progress and summaries go to stdout.
//
// # Commands
//
//   - aptgraph OUTPUT_DIR: collect, persist and render the graphs
//   - serve: browse a finished output directory over HTTP
//   - cache: manage the dependency dump cache
//   - completion: generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger on w with "HH:MM:SS.ms" timestamps
// (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// stopwatch logs how long a step took. Not safe for concurrent use.
type stopwatch struct {
	logger *log.Logger
	start  time.Time
}

func newStopwatch(l *log.Logger) *stopwatch {
	return &stopwatch{logger: l, start: time.Now()}
}

// elapsed returns the time since the stopwatch started, rounded to
// milliseconds.
func (s *stopwatch) elapsed() time.Duration {
	return time.Since(s.start).Round(time.Millisecond)
}

// done logs msg at info level with the elapsed time and extra key/value
// pairs, e.g. "collected packages=1843 duration=4.211s".
func (s *stopwatch) done(msg string, keyvals ...any) {
	s.logger.Info(msg, append(keyvals, "duration", s.elapsed())...)
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a copy of ctx carrying l.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default() when there is none.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
