package markdown

import (
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

const (
	// wikiRendererPriority must beat the HTML renderers extensions register
	// (500 for GFM nodes) so every node kind resolves to the wiki renderer.
	wikiRendererPriority   = 100
	linkPrefixPriority     = 900
	headingAnchorsPriority = 910
)

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
}

// IsKnownExtension reports whether name maps to a supported goldmark
// extension.
func IsKnownExtension(name string) bool {
	_, ok := extensionRegistry[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// KnownExtensions lists the accepted extension names.
func KnownExtensions() []string {
	names := make([]string, 0, len(extensionRegistry))
	for name := range extensionRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type engineOptions struct {
	extensions     []string
	hardWraps      bool
	headingAnchors bool
	linkPrefix     *linkPrefixTransformer
}

// newGoldmarkEngine builds a goldmark instance wired to the wiki renderer.
// A new engine is built per call since link prefixes differ per page.
func newGoldmarkEngine(opts engineOptions) goldmark.Markdown {
	transformers := []util.PrioritizedValue{}
	if opts.linkPrefix != nil {
		transformers = append(transformers, util.Prioritized(opts.linkPrefix, linkPrefixPriority))
	}
	if opts.headingAnchors {
		transformers = append(transformers, util.Prioritized(fragmentTransformer{}, headingAnchorsPriority))
	}

	parserOptions := []parser.Option{}
	if len(transformers) > 0 {
		parserOptions = append(parserOptions, parser.WithASTTransformers(transformers...))
	}

	wiki := renderer.NewRenderer(renderer.WithNodeRenderers(
		util.Prioritized(&wikiRenderer{
			hardWraps:      opts.hardWraps,
			headingAnchors: opts.headingAnchors,
		}, wikiRendererPriority),
	))

	engineOptions := []goldmark.Option{
		goldmark.WithRenderer(wiki),
		goldmark.WithParserOptions(parserOptions...),
	}
	if exts := collectExtensions(opts.extensions); len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}

	return goldmark.New(engineOptions...)
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{
			extension.GFM,
		}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}

		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}

		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}

	return extenders
}
