// Package classifier decides how a page source is treated from its file
// extension alone. It never opens the resource.
package classifier

import (
	"strings"

	"github.com/goliatone/go-pagecontent/pkg/interfaces"
)

// Extension is a recognised source file extension.
type Extension string

const (
	Markdown Extension = "md"
	XML      Extension = "xml"
	XHTML    Extension = "xhtml"
)

// IsExtensionOf reports whether path ends with ".<ext>". Matching is case
// sensitive.
func (e Extension) IsExtensionOf(path string) bool {
	if path == "" {
		return false
	}
	return strings.HasSuffix(path, "."+string(e))
}

// Result is the verdict for one path.
type Result struct {
	IsMarkdown     bool
	Representation interfaces.Representation
}

// Classify inspects path and returns whether it is markdown and which
// representation its content maps to.
func Classify(path string) Result {
	representation := interfaces.RepresentationWiki
	if XML.IsExtensionOf(path) || XHTML.IsExtensionOf(path) {
		representation = interfaces.RepresentationStorage
	}
	return Result{
		IsMarkdown:     Markdown.IsExtensionOf(path),
		Representation: representation,
	}
}
