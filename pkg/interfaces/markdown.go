package interfaces

import "context"

// ParserContext describes where a markdown body is being rendered. It is
// built per call by the pipeline and handed to the transformer.
type ParserContext interface {
	Site() Site
	Page() Page
	// PagePrefixToApply returns the prefix injected into relative links, if any.
	PagePrefixToApply() (string, bool)
	// IsLinkPrefixEnabled is false when the page ignores variables or when the
	// resolved model page title already carries explicit link syntax ("[").
	IsLinkPrefixEnabled() bool
}

// MarkdownTransformer converts markdown source into the target markup
// dialect. Implementations must be safe for concurrent use.
type MarkdownTransformer interface {
	Transform(ctx context.Context, pctx ParserContext, source string) (string, error)
}

// ParseOptions customises markdown parsing. Extension names are the ones
// accepted by the goldmark registry (gfm, table, strikethrough, linkify,
// tasklist).
type ParseOptions struct {
	Extensions       []string
	HardWraps        bool
	HeadingAnchors   bool
	StripFrontMatter bool
	// LinkPrefixSeparator joins the page prefix and a relative link target.
	LinkPrefixSeparator string
}
