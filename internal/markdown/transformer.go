package markdown

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-pagecontent/internal/logging"
	"github.com/goliatone/go-pagecontent/pkg/interfaces"
)

// WikiTransformer implements interfaces.MarkdownTransformer on top of
// goldmark. It keeps no per-call state.
type WikiTransformer struct {
	opts   interfaces.ParseOptions
	logger interfaces.Logger
}

var _ interfaces.MarkdownTransformer = (*WikiTransformer)(nil)

// NewWikiTransformer creates a transformer with the given parse options.
func NewWikiTransformer(opts interfaces.ParseOptions, logger interfaces.Logger) *WikiTransformer {
	if logger == nil {
		logger = logging.NoOp()
	}
	if opts.LinkPrefixSeparator == "" {
		opts.LinkPrefixSeparator = defaultLinkPrefixSeparator
	}
	return &WikiTransformer{opts: opts, logger: logger}
}

// Transform renders source into wiki markup. Relative links are prefixed
// when pctx enables link prefixing and supplies a prefix.
func (t *WikiTransformer) Transform(ctx context.Context, pctx interfaces.ParserContext, source string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	body := []byte(source)
	if t.opts.StripFrontMatter {
		meta, stripped, err := SplitFrontMatter(body)
		if err != nil {
			return "", fmt.Errorf("markdown transform: %w", err)
		}
		if meta.Title != "" {
			t.logger.Debug("markdown.frontmatter.stripped", "title", meta.Title, "keys", len(meta.Raw))
		}
		body = stripped
	}

	opts := engineOptions{
		extensions:     t.opts.Extensions,
		hardWraps:      t.opts.HardWraps,
		headingAnchors: t.opts.HeadingAnchors,
	}
	if prefix, ok := linkPrefix(pctx); ok {
		opts.linkPrefix = newLinkPrefixTransformer(prefix, t.opts.LinkPrefixSeparator)
	}

	var buf bytes.Buffer
	if err := newGoldmarkEngine(opts).Convert(body, &buf); err != nil {
		return "", fmt.Errorf("markdown transform: %w", err)
	}

	return strings.TrimRight(buf.String(), "\n"), nil
}

func linkPrefix(pctx interfaces.ParserContext) (string, bool) {
	if pctx == nil || !pctx.IsLinkPrefixEnabled() {
		return "", false
	}
	prefix, ok := pctx.PagePrefixToApply()
	if !ok || strings.TrimSpace(prefix) == "" {
		return "", false
	}
	return prefix, true
}
