package di

import (
	"fmt"
	"io/fs"
	"net/http"
	"strings"

	"golang.org/x/text/encoding/htmlindex"

	"github.com/goliatone/go-pagecontent/internal/logging"
	"github.com/goliatone/go-pagecontent/internal/logging/gologger"
	"github.com/goliatone/go-pagecontent/internal/markdown"
	"github.com/goliatone/go-pagecontent/internal/pipeline"
	"github.com/goliatone/go-pagecontent/internal/resolver"
	"github.com/goliatone/go-pagecontent/internal/runtimeconfig"
	"github.com/goliatone/go-pagecontent/pkg/interfaces"
)

// Container wires the resolver, markdown transformer and pipeline.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	httpClient     *http.Client
	loaders        []interfaces.ResourceLoader

	resolver    *resolver.Resolver
	transformer interfaces.MarkdownTransformer
	processor   *pipeline.Processor
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider derived from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithResourceFS registers fsys as a module resource loader. Loaders are
// searched in registration order, after the configured resource roots.
func WithResourceFS(name string, fsys fs.FS) Option {
	return func(c *Container) {
		if fsys != nil {
			c.loaders = append(c.loaders, resolver.NewFSLoader(name, fsys))
		}
	}
}

// WithResourceLoader registers a custom module resource loader.
func WithResourceLoader(loader interfaces.ResourceLoader) Option {
	return func(c *Container) {
		if loader != nil {
			c.loaders = append(c.loaders, loader)
		}
	}
}

// WithTransformer replaces the goldmark based wiki transformer.
func WithTransformer(transformer interfaces.MarkdownTransformer) Option {
	return func(c *Container) {
		if transformer != nil {
			c.transformer = transformer
		}
	}
}

// WithHTTPClient overrides the client used for http(s) URIs.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Container) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewContainer validates cfg and builds the module graph.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, root := range cfg.Resolver.ResourceRoots {
		c.loaders = append(c.loaders, resolver.NewDirLoader(root))
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configurePipeline(); err != nil {
		return nil, err
	}

	logging.ModuleLogger(c.loggerProvider, "").Debug("pagecontent.container.configured",
		"loaders", len(c.loaders),
		"extensions", strings.Join(cfg.Markdown.Extensions, ","),
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	case "noop":
	default:
		return fmt.Errorf("%w: %s", runtimeconfig.ErrLoggingProviderUnknown, c.Config.Logging.Provider)
	}
	return nil
}

func (c *Container) configurePipeline() error {
	c.resolver = resolver.New(
		resolver.Config{
			Timeout:   c.Config.Resolver.Timeout,
			UserAgent: c.Config.Resolver.UserAgent,
		},
		resolver.WithLoaders(c.loaders...),
		resolver.WithHTTPClient(c.httpClient),
		resolver.WithLogger(logging.ResolverLogger(c.loggerProvider)),
	)

	if c.transformer == nil {
		c.transformer = markdown.NewWikiTransformer(interfaces.ParseOptions{
			Extensions:          c.Config.Markdown.Extensions,
			HardWraps:           c.Config.Markdown.HardWraps,
			HeadingAnchors:      c.Config.Markdown.HeadingAnchors,
			StripFrontMatter:    c.Config.Markdown.StripFrontMatter,
			LinkPrefixSeparator: c.Config.Markdown.LinkPrefixSeparator,
		}, logging.MarkdownLogger(c.loggerProvider))
	}

	opts := []pipeline.Option{pipeline.WithLogger(logging.PipelineLogger(c.loggerProvider))}
	if charset := strings.TrimSpace(c.Config.Resolver.SourceCharset); charset != "" {
		enc, err := htmlindex.Get(charset)
		if err != nil {
			return fmt.Errorf("%w: %s", runtimeconfig.ErrSourceCharsetUnknown, charset)
		}
		opts = append(opts, pipeline.WithSourceEncoding(enc))
	}
	c.processor = pipeline.New(c.resolver, c.transformer, opts...)
	return nil
}

// LoggerProvider returns the configured provider, nil when logging is off.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Resolver returns the URI resolver.
func (c *Container) Resolver() *resolver.Resolver {
	return c.resolver
}

// Transformer returns the markdown transformer.
func (c *Container) Transformer() interfaces.MarkdownTransformer {
	return c.transformer
}

// Processor returns the content pipeline.
func (c *Container) Processor() *pipeline.Processor {
	return c.processor
}
