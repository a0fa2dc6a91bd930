package commands

import (
	"context"
	"strings"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-pagecontent/internal/logging"
	"github.com/goliatone/go-pagecontent/pkg/interfaces"
)

// DefaultCommandTimeout bounds one page resolution when no timeout is set.
const DefaultCommandTimeout = 30 * time.Second

const commandModuleRoot = "pagecontent.commands"

// CommandLogger returns the logger for a command module, tagged with the
// module name.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	return logging.WithFields(logging.ModuleLogger(provider, commandModuleRoot+"."+name), map[string]any{
		"component":      "command",
		"command_module": name,
	})
}

// EnsureLogger returns logger, or a no-op logger when it is nil.
func EnsureLogger(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return logging.NoOp()
	}
	return logger
}

// HandlerOption configures a Handler.
type HandlerOption[T command.Message] func(*Handler[T])

// Handler adapts a command function to go-command's Commander. Each
// execution is validated, bounded by a timeout and logged, and pipeline
// failures are reported with a per-category text code.
type Handler[T command.Message] struct {
	exec          command.CommandFunc[T]
	logger        interfaces.Logger
	timeout       time.Duration
	operation     string
	messageFields func(T) map[string]any
	telemetry     Telemetry[T]
}

// NewHandler panics when fn is nil.
func NewHandler[T command.Message](fn command.CommandFunc[T], opts ...HandlerOption[T]) *Handler[T] {
	if fn == nil {
		panic("commands: handler function cannot be nil")
	}
	h := &Handler[T]{
		exec:    fn,
		logger:  logging.NoOp(),
		timeout: DefaultCommandTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Execute implements command.Commander[T].
func (h *Handler[T]) Execute(ctx context.Context, msg T) error {
	if err := command.ValidateMessage(msg); err != nil {
		return wrapValidationError(err)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	fields := h.fields(msg)
	if err := ctx.Err(); err != nil {
		return wrapContextError(err, fields)
	}

	logger := logging.WithFields(h.logger, fields)
	logger.Debug("pagecontent.command.start")

	ctx, resolution := withResolutionSlot(ctx)
	started := time.Now()
	err := h.exec(ctx, msg)
	switch {
	case err != nil:
		err = wrapExecuteError(err, fields)
	case ctx.Err() != nil:
		err = wrapContextError(ctx.Err(), fields)
	}
	status, category := classifyOutcome(err)

	info := TelemetryInfo{
		Command:       command.GetMessageType(msg),
		Operation:     h.operation,
		Fields:        fields,
		Duration:      time.Since(started),
		Error:         err,
		ErrorCategory: category,
		Status:        status,
		Logger:        logger,
	}
	if resolution.URI != "" || resolution.Representation != "" {
		info.Resolution = resolution
	}

	telemetry := h.telemetry
	if telemetry == nil {
		telemetry = DefaultTelemetry[T](h.logger)
	}
	telemetry(ctx, msg, info)
	return err
}

func (h *Handler[T]) fields(msg T) map[string]any {
	fields := map[string]any{
		"command": command.GetMessageType(msg),
	}
	if h.operation != "" {
		fields["operation"] = h.operation
	}
	if h.messageFields != nil {
		for key, value := range h.messageFields(msg) {
			fields[key] = value
		}
	}
	return fields
}

// WithTimeout overrides DefaultCommandTimeout. Zero or negative disables it.
func WithTimeout[T command.Message](timeout time.Duration) HandlerOption[T] {
	return func(h *Handler[T]) {
		if timeout <= 0 {
			h.timeout = 0
			return
		}
		h.timeout = timeout
	}
}

// WithLogger injects the execution logger.
func WithLogger[T command.Message](logger interfaces.Logger) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.logger = EnsureLogger(logger)
	}
}

// WithOperation names the operation in every log entry.
func WithOperation[T command.Message](operation string) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.operation = operation
	}
}

// WithMessageFields derives extra log fields from each message.
func WithMessageFields[T command.Message](fn func(T) map[string]any) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.messageFields = fn
	}
}

// WithTelemetry replaces DefaultTelemetry.
func WithTelemetry[T command.Message](fn Telemetry[T]) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.telemetry = fn
	}
}
