package pagecontentcmd

import (
	"context"
	"errors"
	"net/url"
	"strings"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-pagecontent/internal/commands"
	"github.com/goliatone/go-pagecontent/internal/pipeline"
	"github.com/goliatone/go-pagecontent/pkg/interfaces"
)

const resolveOperation = "pagecontent.resolve_page"

var (
	// ErrProcessorRequired is returned when a handler is built without a pipeline.
	ErrProcessorRequired = errors.New("pagecontent command: processor is nil")
)

var _ command.Commander[ResolvePageCommand] = (*ResolvePageHandler)(nil)

// Sink receives the content produced for a command.
type Sink func(ctx context.Context, msg ResolvePageCommand, content interfaces.PageContent) error

// ResolvePageHandler runs the content pipeline via the shared command handler foundation.
type ResolvePageHandler struct {
	inner *commands.Handler[ResolvePageCommand]
}

// NewResolvePageHandler creates a handler bound to processor. The content is
// stored on a go-command Result carried by ctx, when there is one, and then
// passed to sink. A nil sink is allowed.
func NewResolvePageHandler(processor *pipeline.Processor, sink Sink, logger interfaces.Logger, opts ...commands.HandlerOption[ResolvePageCommand]) (*ResolvePageHandler, error) {
	if processor == nil {
		return nil, ErrProcessorRequired
	}
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ResolvePageCommand) error {
		u, err := url.Parse(strings.TrimSpace(msg.URI))
		if err != nil {
			return interfaces.NewInvalidURIError(msg.URI)
		}

		var model interfaces.ModelPage
		if msg.ModelPageTitle != "" {
			model = modelPage{title: msg.ModelPageTitle}
		}
		pg := page{name: msg.PageTitle, uri: u, ignoreVariables: msg.IgnoreVariables}

		result, err := processor.ProcessPageURI(ctx, site{key: msg.SpaceKey}, pg, model, u, msg.LinkPrefix)
		if err != nil {
			return err
		}
		content, err := result.Get(ctx)
		if err != nil {
			return err
		}

		commands.RecordResolution(ctx, commands.Resolution{
			URI:            u.String(),
			Representation: content.Representation(),
			Bytes:          len(content.Content()),
		})
		if result := command.ResultFromContext[interfaces.PageContent](ctx); result != nil {
			result.StoreWithMeta(content, map[string]any{
				"uri":            u.String(),
				"representation": content.Representation().String(),
			})
		}

		if sink == nil {
			return nil
		}
		return sink(ctx, msg, content)
	}

	handlerOpts := []commands.HandlerOption[ResolvePageCommand]{
		commands.WithLogger[ResolvePageCommand](baseLogger),
		commands.WithOperation[ResolvePageCommand](resolveOperation),
		commands.WithMessageFields(func(msg ResolvePageCommand) map[string]any {
			fields := map[string]any{
				"uri": msg.URI,
			}
			if msg.PageTitle != "" {
				fields["page"] = msg.PageTitle
			}
			if msg.LinkPrefix != "" {
				fields["link_prefix"] = msg.LinkPrefix
			}
			if msg.IgnoreVariables {
				fields["ignore_variables"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ResolvePageCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ResolvePageHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}, nil
}

// Execute satisfies command.Commander[ResolvePageCommand].
func (h *ResolvePageHandler) Execute(ctx context.Context, msg ResolvePageCommand) error {
	return h.inner.Execute(ctx, msg)
}

type site struct{ key string }

func (s site) SpaceKey() string      { return s.key }
func (s site) Home() interfaces.Page { return nil }

type page struct {
	name            string
	uri             *url.URL
	ignoreVariables bool
}

func (p page) Name() string          { return p.name }
func (p page) URI() *url.URL         { return p.uri }
func (p page) IgnoreVariables() bool { return p.ignoreVariables }

type modelPage struct{ title string }

func (m modelPage) ID() string    { return m.title }
func (m modelPage) Title() string { return m.title }
