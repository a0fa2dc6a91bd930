// Package pipeline turns a page URI into a PageContent value. One core
// algorithm (resolve, drain, decode, classify, transform) backs three
// delivery contracts: callback, future and return-or-error.
package pipeline

import (
	"context"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/goliatone/go-pagecontent/internal/classifier"
	"github.com/goliatone/go-pagecontent/internal/logging"
	"github.com/goliatone/go-pagecontent/internal/resolver"
	"github.com/goliatone/go-pagecontent/pkg/interfaces"
)

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the processor logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithSourceEncoding sets the encoding raw sources are decoded from. A
// leading byte order mark always wins. Defaults to UTF-8.
func WithSourceEncoding(enc encoding.Encoding) Option {
	return func(p *Processor) {
		if enc != nil {
			p.encoding = enc
		}
	}
}

// Processor holds collaborators only; every call allocates its own stream
// and buffers, so a Processor is safe for concurrent use.
type Processor struct {
	resolver    *resolver.Resolver
	transformer interfaces.MarkdownTransformer
	encoding    encoding.Encoding
	logger      interfaces.Logger
}

// New creates a Processor.
func New(res *resolver.Resolver, transformer interfaces.MarkdownTransformer, opts ...Option) *Processor {
	p := &Processor{
		resolver:    res,
		transformer: transformer,
		encoding:    unicode.UTF8,
		logger:      logging.NoOp(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type request struct {
	site   interfaces.Site
	page   interfaces.Page
	model  interfaces.ModelPage
	prefix string
}

// resolveCore runs the shared algorithm. Errors are already typed; callers
// only adapt them to their delivery shape.
func (p *Processor) resolveCore(ctx context.Context, resolved resolver.ResolvedURI, req request) (interfaces.PageContent, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	verdict := classifier.Classify(resolved.Path)
	source := resolved.SchemeSpecificPart

	logger := logging.WithResolutionContext(
		logging.FromContext(ctx, p.logger),
		logging.NewResolutionID(),
		resolved.URI.String(),
		resolved.Scheme,
		verdict.Representation,
	)
	if req.page != nil {
		logger = logging.WithFields(logger, map[string]any{"page": req.page.Name()})
	}

	rc, err := p.resolver.Resolve(ctx, resolved)
	if err != nil {
		logger.Warn("pipeline.resolve.failed", "error", err)
		return interfaces.PageContent{}, err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		logger.Warn("pipeline.read.failed", "error", err)
		return interfaces.PageContent{}, interfaces.NewIOError(source, err)
	}

	text, err := p.decode(raw)
	if err != nil {
		logger.Warn("pipeline.decode.failed", "error", err)
		return interfaces.PageContent{}, interfaces.NewTransformError(source, err)
	}

	content := text
	if verdict.IsMarkdown {
		pctx := NewParserContext(req.site, req.page, req.model, req.prefix)
		content, err = p.transformer.Transform(ctx, pctx, text)
		if err != nil {
			logger.Warn("pipeline.markdown.failed", "error", err)
			return interfaces.PageContent{}, interfaces.NewTransformError(source, err)
		}
		logger.Debug("pipeline.markdown.transformed", "link_prefix_enabled", pctx.IsLinkPrefixEnabled())
	}

	logger.Debug("pipeline.resolve.completed", "bytes", len(raw))
	return interfaces.NewPageContent(content, verdict.Representation), nil
}

func (p *Processor) decode(raw []byte) (string, error) {
	decoder := unicode.BOMOverride(p.encoding.NewDecoder())
	out, _, err := transform.Bytes(decoder, raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
