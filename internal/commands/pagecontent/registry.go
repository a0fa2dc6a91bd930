package pagecontentcmd

import (
	"github.com/goliatone/go-pagecontent/internal/commands"
	"github.com/goliatone/go-pagecontent/internal/pipeline"
	"github.com/goliatone/go-pagecontent/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the handlers produced by RegisterCommands.
type HandlerSet struct {
	Resolve *ResolvePageHandler
}

// RegisterCommands builds the page content handlers and registers them with reg when
// it is non-nil.
func RegisterCommands(reg CommandRegistry, processor *pipeline.Processor, provider interfaces.LoggerProvider, sink Sink, opts ...commands.HandlerOption[ResolvePageCommand]) (*HandlerSet, error) {
	logger := commands.CommandLogger(provider, "pagecontent")

	resolve, err := NewResolvePageHandler(processor, sink, logger, opts...)
	if err != nil {
		return nil, err
	}

	if reg != nil {
		if err := reg.RegisterCommand(resolve); err != nil {
			return nil, err
		}
	}

	return &HandlerSet{Resolve: resolve}, nil
}
