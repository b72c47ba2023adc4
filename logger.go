package clarans

import (
	"context"
	"io"
	"log/slog"
	"math"
	"os"
)

// Logger wraps slog.Logger with clarans-specific field helpers, so every
// search logs with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler.
// If handler is nil, a text handler writing Info and above to stderr is used.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger creates a Logger that writes human-readable text logs to w.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewJSONLogger creates a Logger that writes JSON-formatted logs to w.
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // unreachable
	}))
}

// WithWorker tags the logger with a worker index.
func (l *Logger) WithWorker(worker int) *Logger {
	return &Logger{Logger: l.Logger.With("worker", worker)}
}

// WithK adds the cluster count.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{Logger: l.Logger.With("k", k)}
}

// LogImprovement logs a restart whose local optimum beat the best so far.
// The first restart has no previous cost, so from is omitted while infinite.
func (l *Logger) LogImprovement(ctx context.Context, restart int, from, to float64) {
	args := []any{"restart", restart, "to", to}
	if !math.IsInf(from, 1) {
		args = append(args, "from", from)
	}
	l.DebugContext(ctx, "improved cost", args...)
}

// LogWorkerDone logs the local best of a finished worker.
func (l *Logger) LogWorkerDone(ctx context.Context, restarts int, cost float64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "worker failed",
			"restarts", restarts,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "worker completed",
		"restarts", restarts,
		"cost", cost,
	)
}

// LogSearch logs the outcome of a whole search.
func (l *Logger) LogSearch(ctx context.Context, points int, res *Result, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed",
			"points", points,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "search completed",
		"points", points,
		"cost", res.Cost,
		"restarts", res.Restarts,
		"trials", res.Trials,
		"moves", res.Moves,
	)
}
