// Package cli implements the chartkit command-line interface.
//
// The commands expose each layout step on its own so it can be tried
// without a host application: building hierarchies from a pivot table,
// scheduling axis labels, reserving and placing a legend, truncating text,
// and running a full layout pass with an optional PNG or SVG preview. The
// CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - hierarchy: Print the column and row hierarchies of a table
//   - labels: Decide rotation and skipping for a list of axis labels
//   - legend: Reserve and place a legend for a list of labels
//   - render: Run a full layout pass and write the frame or a preview
//   - truncate: Fit one label to a width
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so library stages log under the same
// logger as the command.
//
// # Settings
//
// --config names a TOML settings file. Without it the CLI reads
// $XDG_CONFIG_HOME/chartkit/settings.toml when present. Command flags
// override individual settings.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs completion of an operation with its elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Laid out sales.xlsx (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
