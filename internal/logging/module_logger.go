package logging

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-pagecontent/pkg/interfaces"
)

const (
	rootModule     = "pagecontent"
	resolverModule = "pagecontent.resolver"
	markdownModule = "pagecontent.markdown"
	pipelineModule = "pagecontent.pipeline"
)

const (
	fieldResolutionID   = "resolution_id"
	fieldURI            = "uri"
	fieldScheme         = "scheme"
	fieldRepresentation = "representation"
)

// ModuleLogger returns a logger scoped to module, falling back to a no-op
// logger when provider is nil. The module name is attached as a field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// ResolverLogger returns the logger namespace reserved for URI resolution.
func ResolverLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, resolverModule)
}

// MarkdownLogger returns the logger namespace reserved for markdown transforms.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// PipelineLogger returns the logger namespace reserved for page resolution.
func PipelineLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, pipelineModule)
}

// NewResolutionID returns an identifier correlating every entry of one
// resolution call.
func NewResolutionID() string {
	return uuid.NewString()
}

// WithResolutionContext enriches logger with the fields shared by one
// resolution call. Empty values are skipped.
func WithResolutionContext(logger interfaces.Logger, resolutionID, uri, scheme string, representation interfaces.Representation) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(resolutionID); trimmed != "" {
		fields[fieldResolutionID] = trimmed
	}
	if trimmed := strings.TrimSpace(uri); trimmed != "" {
		fields[fieldURI] = trimmed
	}
	if trimmed := strings.TrimSpace(scheme); trimmed != "" {
		fields[fieldScheme] = trimmed
	}
	if representation != "" {
		fields[fieldRepresentation] = representation.String()
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var (
	_ interfaces.Logger       = noopLogger{}
	_ interfaces.FieldsLogger = noopLogger{}
)

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
