package pipeline

import (
	"strings"

	"github.com/goliatone/go-pagecontent/pkg/interfaces"
)

type parserContext struct {
	site   interfaces.Site
	page   interfaces.Page
	model  interfaces.ModelPage
	prefix string
}

var _ interfaces.ParserContext = parserContext{}

// NewParserContext builds the context handed to the markdown transformer.
// model may be nil and an empty prefix means no prefix.
func NewParserContext(site interfaces.Site, page interfaces.Page, model interfaces.ModelPage, prefix string) interfaces.ParserContext {
	return parserContext{site: site, page: page, model: model, prefix: prefix}
}

func (c parserContext) Site() interfaces.Site { return c.site }

func (c parserContext) Page() interfaces.Page { return c.page }

func (c parserContext) PagePrefixToApply() (string, bool) {
	return c.prefix, c.prefix != ""
}

// IsLinkPrefixEnabled is false for pages ignoring variables. Otherwise a
// model page title containing "[" already encodes explicit link targets and
// disables prefixing.
func (c parserContext) IsLinkPrefixEnabled() bool {
	if c.page != nil && c.page.IgnoreVariables() {
		return false
	}
	if c.model != nil {
		return !strings.Contains(c.model.Title(), "[")
	}
	return true
}
