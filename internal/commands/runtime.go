package commands

import (
	"context"
	"time"

	"github.com/goliatone/go-quizz/internal/logging"
	"github.com/goliatone/go-quizz/pkg/interfaces"
)

// DefaultCommandTimeout bounds a single directory run.
const DefaultCommandTimeout = 5 * time.Minute

// boundedContext substitutes context.Background for a nil ctx and applies
// timeout when it is positive.
func boundedContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// EnsureLogger returns logger, or a no-op logger when it is nil.
func EnsureLogger(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return logging.NoOp()
	}
	return logger
}
