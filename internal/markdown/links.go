package markdown

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-slug"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

const defaultLinkPrefixSeparator = " - "

var schemePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.\-]*:`)

// PrefixLink joins prefix and a relative link target. Fragments, targets
// with a scheme and targets already carrying the prefix are left alone.
func PrefixLink(destination, prefix, separator string) string {
	if destination == "" || strings.TrimSpace(prefix) == "" {
		return destination
	}
	if strings.HasPrefix(destination, "#") || schemePattern.MatchString(destination) {
		return destination
	}
	if strings.HasPrefix(destination, prefix+separator) {
		return destination
	}
	return prefix + separator + destination
}

type linkPrefixTransformer struct {
	prefix    string
	separator string
}

func newLinkPrefixTransformer(prefix, separator string) *linkPrefixTransformer {
	if separator == "" {
		separator = defaultLinkPrefixSeparator
	}
	return &linkPrefixTransformer{prefix: prefix, separator: separator}
}

// Transform implements parser.ASTTransformer.
func (t *linkPrefixTransformer) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if link, ok := n.(*ast.Link); ok {
			link.Destination = []byte(PrefixLink(string(link.Destination), t.prefix, t.separator))
		}
		return ast.WalkContinue, nil
	})
}

// fragmentTransformer rewrites "#Some Heading" targets to the anchor names
// emitted for headings.
type fragmentTransformer struct{}

func (fragmentTransformer) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if link, ok := n.(*ast.Link); ok {
			dest := string(link.Destination)
			if strings.HasPrefix(dest, "#") && len(dest) > 1 {
				link.Destination = []byte("#" + anchorName(dest[1:]))
			}
		}
		return ast.WalkContinue, nil
	})
}

func anchorName(value string) string {
	normalized, err := slug.Normalize(value)
	if err != nil || normalized == "" {
		return strings.TrimSpace(value)
	}
	return normalized
}
