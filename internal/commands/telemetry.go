package commands

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-pagecontent/internal/logging"
	"github.com/goliatone/go-pagecontent/pkg/interfaces"
)

// TelemetryStatus classifies how a command ended.
type TelemetryStatus string

const (
	TelemetryStatusSuccess TelemetryStatus = "success"
	// TelemetryStatusPipelineError means the page could not be resolved,
	// read or rendered.
	TelemetryStatusPipelineError TelemetryStatus = "pipeline_error"
	TelemetryStatusFailed        TelemetryStatus = "failed"
	TelemetryStatusContextError  TelemetryStatus = "context_error"
)

// Resolution is the page content a command produced.
type Resolution struct {
	URI            string
	Representation interfaces.Representation
	Bytes          int
}

type resolutionKey struct{}

// RecordResolution stores res on the slot the running Handler placed on ctx.
// It is a no-op outside a Handler.
func RecordResolution(ctx context.Context, res Resolution) {
	if ctx == nil {
		return
	}
	if slot, ok := ctx.Value(resolutionKey{}).(*Resolution); ok && slot != nil {
		*slot = res
	}
}

func withResolutionSlot(ctx context.Context) (context.Context, *Resolution) {
	slot := &Resolution{}
	return context.WithValue(ctx, resolutionKey{}, slot), slot
}

// TelemetryInfo is handed to telemetry callbacks once a command returns.
type TelemetryInfo struct {
	Command       string
	Operation     string
	Fields        map[string]any
	Duration      time.Duration
	Error         error
	ErrorCategory goerrors.Category
	Status        TelemetryStatus
	// Resolution is nil unless the command recorded one.
	Resolution *Resolution
	Logger     interfaces.Logger
}

// Telemetry is invoked after every execution.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// DefaultTelemetry logs outcomes with the resolution fields attached.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	if logger == nil {
		logger = logging.NoOp()
	}
	return func(_ context.Context, _ T, info TelemetryInfo) {
		entry := logging.WithFields(logger, resolutionFields(info))
		args := []any{"duration_ms", info.Duration.Milliseconds()}
		switch info.Status {
		case TelemetryStatusSuccess:
			entry.Info("pagecontent.command.resolved", args...)
		case TelemetryStatusPipelineError:
			entry.Warn("pagecontent.command.pipeline_error", append(args, "error", info.Error)...)
		case TelemetryStatusContextError:
			entry.Error("pagecontent.command.context_error", append(args, "error", info.Error)...)
		default:
			entry.Error("pagecontent.command.failed", append(args, "error", info.Error)...)
		}
	}
}

func resolutionFields(info TelemetryInfo) map[string]any {
	fields := make(map[string]any, len(info.Fields)+4)
	for key, value := range info.Fields {
		fields[key] = value
	}
	if info.ErrorCategory != "" {
		fields["error_category"] = string(info.ErrorCategory)
	}
	if res := info.Resolution; res != nil {
		if res.URI != "" {
			fields["uri"] = res.URI
		}
		fields["representation"] = res.Representation.String()
		fields["bytes"] = res.Bytes
	}
	return fields
}

func classifyOutcome(err error) (TelemetryStatus, goerrors.Category) {
	if err == nil {
		return TelemetryStatusSuccess, ""
	}
	if category, ok := PipelineCategory(err); ok {
		return TelemetryStatusPipelineError, category
	}
	var typed *goerrors.Error
	if goerrors.As(err, &typed) {
		switch typed.TextCode {
		case TextCodeCanceled, TextCodeTimeout, TextCodeContext:
			return TelemetryStatusContextError, typed.Category
		}
		return TelemetryStatusFailed, typed.Category
	}
	return TelemetryStatusFailed, ""
}
