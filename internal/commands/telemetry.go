package commands

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-quizz/internal/logging"
	"github.com/goliatone/go-quizz/internal/quizerr"
	"github.com/goliatone/go-quizz/pkg/interfaces"
)

// TelemetryStatus captures the result category for command execution.
type TelemetryStatus string

const (
	TelemetryStatusSuccess      TelemetryStatus = "success"
	TelemetryStatusFailed       TelemetryStatus = "failed"
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// TelemetryInfo describes a command execution outcome provided to telemetry callbacks.
type TelemetryInfo struct {
	Command   string
	Operation string
	RunID     string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	Status    TelemetryStatus
	Logger    interfaces.Logger
}

// Telemetry is invoked once per execution, after the wrapped function returns.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// DefaultTelemetry logs command outcomes with the supplied logger.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	if logger == nil {
		logger = logging.NoOp()
	}
	return func(_ context.Context, _ T, info TelemetryInfo) {
		entry := logging.WithFields(logger, info.Fields)
		elapsed := info.Duration.Round(time.Millisecond)
		switch info.Status {
		case TelemetryStatusSuccess:
			entry.Info("command.completed", "elapsed", elapsed)
		case TelemetryStatusContextError:
			entry.Warn("command.interrupted", "elapsed", elapsed, "error", info.Error)
		default:
			entry.Error("command.failed", "elapsed", elapsed, "code", quizerr.TextCode(info.Error), "error", info.Error)
		}
	}
}
