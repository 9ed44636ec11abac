// Package cli implements the stepsort command-line interface.
//
// This package provides commands for watching sorting algorithms in the
// terminal, tracing and benchmarking them headlessly, verifying them against
// every permutation of small inputs, and rendering heap snapshots. The CLI is
// built using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
// The main commands are:
//   - visualize: Interactive terminal animation (alias: tui)
//   - run: Sort one sequence, optionally printing every step
//   - bench: Compare step counts across algorithms
//   - verify: Check every algorithm against all small permutations
//   - heap-tree: Render the heap of a heap sort as SVG, PDF, PNG or DOT
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/matzehuels/stepsort/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stepsort/pkg/observability"
	"github.com/matzehuels/stepsort/pkg/visualizer"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Sorted 20 values (3ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() if none
// is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability Hooks
// =============================================================================

// logHooks surfaces notable run and session events above debug level.
// Routine progress is already logged at debug level where it happens.
type logHooks struct {
	observability.NoopSortHooks
	observability.NoopVisualizerHooks
	logger *log.Logger
}

var (
	_ observability.SortHooks       = (*logHooks)(nil)
	_ observability.VisualizerHooks = (*logHooks)(nil)
)

func (h *logHooks) OnRunComplete(_ context.Context, algorithm string, steps int, _ time.Duration, err error) {
	if err != nil {
		h.logger.Warn("run failed", "algorithm", algorithm, "steps", steps, "err", err)
	}
}

func (h *logHooks) OnStateChange(_ context.Context, session, _, to string) {
	if to == visualizer.Finished.String() {
		h.logger.Info("session finished", "session", session)
	}
}
