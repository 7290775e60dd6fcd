package commands

import (
	"context"
	"errors"
	"time"

	command "github.com/goliatone/go-command"
	"github.com/google/uuid"

	"github.com/goliatone/go-quizz/internal/logging"
	"github.com/goliatone/go-quizz/pkg/interfaces"
)

// HandlerOption configures a Handler instance.
type HandlerOption[T command.Message] func(*Handler[T])

// Handler wraps a quiz workflow with the shared command concerns: message
// validation, a bounded context, a run id on every log entry, error tagging
// and an optional telemetry callback.
type Handler[T command.Message] struct {
	exec      command.CommandFunc[T]
	logger    interfaces.Logger
	timeout   time.Duration
	operation string
	telemetry Telemetry[T]
	runID     func() string
	fields    func(T) map[string]any
}

// NewHandler creates a handler that satisfies go-command's Commander interface.
func NewHandler[T command.Message](fn command.CommandFunc[T], opts ...HandlerOption[T]) *Handler[T] {
	if fn == nil {
		panic("commands: handler function cannot be nil")
	}
	h := &Handler[T]{
		exec:    fn,
		logger:  logging.NoOp(),
		timeout: DefaultCommandTimeout,
		runID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Execute conforms to command.Commander[T].Execute. The run id is added to
// the context logging fields so loggers derived with WithContext carry it.
func (h *Handler[T]) Execute(ctx context.Context, msg T) error {
	if err := command.ValidateMessage(msg); err != nil {
		return wrapValidationError(err)
	}

	ctx, cancel := boundedContext(ctx, h.timeout)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return wrapContextError(err)
	}

	runID := h.runID()
	fields := map[string]any{
		"command": command.GetMessageType(msg),
		"run_id":  runID,
	}
	if h.operation != "" {
		fields["operation"] = h.operation
	}
	if h.fields != nil {
		for key, value := range h.fields(msg) {
			fields[key] = value
		}
	}
	ctx = logging.ContextWithFields(ctx, fields)
	logger := logging.WithFields(h.logger, fields)
	logger.Debug("command.started")

	started := time.Now()
	execErr := h.exec(ctx, msg)
	info := TelemetryInfo{
		Command:   command.GetMessageType(msg),
		Operation: h.operation,
		RunID:     runID,
		Fields:    fields,
		Duration:  time.Since(started),
		Status:    TelemetryStatusSuccess,
		Logger:    logger,
	}

	var result error
	switch {
	case execErr != nil:
		info.Status = TelemetryStatusFailed
		if errors.Is(execErr, context.Canceled) || errors.Is(execErr, context.DeadlineExceeded) {
			info.Status = TelemetryStatusContextError
		}
		result = wrapExecuteError(execErr)
	case ctx.Err() != nil:
		info.Status = TelemetryStatusContextError
		result = wrapContextError(ctx.Err())
	}
	info.Error = result

	if h.telemetry != nil {
		h.telemetry(ctx, msg, info)
	} else {
		DefaultTelemetry[T](h.logger)(ctx, msg, info)
	}
	return result
}

// WithTimeout overrides the default execution timeout. Zero or negative
// values disable it.
func WithTimeout[T command.Message](timeout time.Duration) HandlerOption[T] {
	return func(h *Handler[T]) {
		if timeout <= 0 {
			h.timeout = 0
			return
		}
		h.timeout = timeout
	}
}

// WithLogger injects the logger used during execution. Defaults to a no-op logger.
func WithLogger[T command.Message](logger interfaces.Logger) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.logger = EnsureLogger(logger)
	}
}

// WithOperation sets a human-friendly operation name emitted with every log entry.
func WithOperation[T command.Message](operation string) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.operation = operation
	}
}

// WithMessageFields derives extra log fields from each message.
func WithMessageFields[T command.Message](fn func(T) map[string]any) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.fields = fn
	}
}

// WithTelemetry replaces the default outcome logging.
func WithTelemetry[T command.Message](telemetry Telemetry[T]) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.telemetry = telemetry
	}
}

// WithRunIDGenerator overrides how run ids are minted. Defaults to random UUIDs.
func WithRunIDGenerator[T command.Message](gen func() string) HandlerOption[T] {
	return func(h *Handler[T]) {
		if gen != nil {
			h.runID = gen
		}
	}
}

// RunID returns the run id Execute attached to ctx, if any.
func RunID(ctx context.Context) string {
	value, _ := logging.ContextFields(ctx)["run_id"].(string)
	return value
}
