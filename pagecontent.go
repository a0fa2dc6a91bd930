package pagecontent

import (
	"context"
	"io"
	"io/fs"
	"net/http"
	"net/url"

	"github.com/goliatone/go-pagecontent/internal/classifier"
	pagecontentcmd "github.com/goliatone/go-pagecontent/internal/commands/pagecontent"
	"github.com/goliatone/go-pagecontent/internal/di"
	"github.com/goliatone/go-pagecontent/internal/pipeline"
	"github.com/goliatone/go-pagecontent/internal/resolver"
	"github.com/goliatone/go-pagecontent/pkg/future"
	"github.com/goliatone/go-pagecontent/pkg/interfaces"
)

// PageContent exports the immutable pipeline result.
type PageContent = interfaces.PageContent

// Representation exports the content format tag.
type Representation = interfaces.Representation

const (
	RepresentationStorage = interfaces.RepresentationStorage
	RepresentationWiki    = interfaces.RepresentationWiki
)

type (
	Site                = interfaces.Site
	Page                = interfaces.Page
	ModelPage           = interfaces.ModelPage
	ResourceLoader      = interfaces.ResourceLoader
	MarkdownTransformer = interfaces.MarkdownTransformer
	ParserContext       = interfaces.ParserContext
	LoggerProvider      = interfaces.LoggerProvider
)

// ResolvePageCommand exports the resolve-page command message.
type ResolvePageCommand = pagecontentcmd.ResolvePageCommand

// ContentFuture is the deferred result of Module.ProcessPageURI.
type ContentFuture = future.Future[interfaces.PageContent]

// Option customises the module graph.
type Option = di.Option

// WithLoggerProvider overrides the provider derived from Config.Logging.
func WithLoggerProvider(provider LoggerProvider) Option {
	return di.WithLoggerProvider(provider)
}

// WithResourceFS adds a module resource filesystem searched for classpath
// URIs after the loader carried on the call context.
func WithResourceFS(name string, fsys fs.FS) Option {
	return di.WithResourceFS(name, fsys)
}

// WithResourceLoader adds a custom module resource loader.
func WithResourceLoader(loader ResourceLoader) Option {
	return di.WithResourceLoader(loader)
}

// WithTransformer replaces the markdown to wiki markup transformer.
func WithTransformer(transformer MarkdownTransformer) Option {
	return di.WithTransformer(transformer)
}

// WithHTTPClient overrides the client used for http(s) URIs.
func WithHTTPClient(client *http.Client) Option {
	return di.WithHTTPClient(client)
}

// ContextWithResourceLoader attaches the caller's resource loader to ctx. It
// is consulted first when resolving classpath URIs.
func ContextWithResourceLoader(ctx context.Context, loader ResourceLoader) context.Context {
	return resolver.WithResourceLoader(ctx, loader)
}

// Module represents the top level page content façade.
type Module struct {
	container *di.Container
}

// New constructs a module using the provided configuration and options.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Processor returns the configured content pipeline.
func (m *Module) Processor() *pipeline.Processor {
	return m.container.Processor()
}

// Transformer returns the configured markdown transformer.
func (m *Module) Transformer() MarkdownTransformer {
	return m.container.Transformer()
}

// ProcessPageURI runs the pipeline and returns a settled future. Only an
// invalid URI is reported through the error result.
func (m *Module) ProcessPageURI(ctx context.Context, site Site, page Page, model ModelPage, uri *url.URL, linkPrefix string) (*ContentFuture, error) {
	return m.container.Processor().ProcessPageURI(ctx, site, page, model, uri, linkPrefix)
}

// RegisterCommands builds the resolve-page command handler over the module
// pipeline and registers it with reg when non-nil.
func (m *Module) RegisterCommands(reg pagecontentcmd.CommandRegistry, sink pagecontentcmd.Sink) (*pagecontentcmd.HandlerSet, error) {
	return pagecontentcmd.RegisterCommands(reg, m.container.Processor(), m.container.LoggerProvider(), sink)
}

// ProcessURI resolves uri to its raw stream and passes either the stream or
// the failure to callback.
func ProcessURI[T any](ctx context.Context, m *Module, uri *url.URL, callback func(error, io.ReadCloser) T) (T, error) {
	return pipeline.ProcessURI(ctx, m.container.Processor(), uri, callback)
}

// ProcessURIContent runs the pipeline and passes the content to onSuccess.
// Pipeline failures are wrapped in a processing error.
func ProcessURIContent[T any](ctx context.Context, m *Module, site Site, page Page, uri *url.URL, homePageTitle string, onSuccess func(PageContent) (T, error)) (T, error) {
	return pipeline.ProcessURIContent(ctx, m.container.Processor(), site, page, uri, homePageTitle, onSuccess)
}

// Classify reports how content at path is treated by the pipeline.
func Classify(path string) (isMarkdown bool, representation Representation) {
	result := classifier.Classify(path)
	return result.IsMarkdown, result.Representation
}

// NewPageContent builds a PageContent value.
func NewPageContent(content string, representation Representation) PageContent {
	return interfaces.NewPageContent(content, representation)
}

var (
	IsInvalidURI = interfaces.IsInvalidURI
	IsNotFound   = interfaces.IsNotFound
	IsIO         = interfaces.IsIO
	IsTransform  = interfaces.IsTransform
	IsProcessing = interfaces.IsProcessing
)
