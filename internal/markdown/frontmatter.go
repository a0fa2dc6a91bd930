package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// FrontMatter holds the metadata block found at the top of a markdown
// source. Only Title is interpreted; everything else is kept in Raw.
type FrontMatter struct {
	Title string         `yaml:"title" toml:"title"`
	Raw   map[string]any `yaml:",inline" toml:"-"`
}

// SplitFrontMatter separates a YAML/TOML front matter block from the
// markdown body. Sources without front matter are returned unchanged.
func SplitFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta FrontMatter

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	if meta.Raw == nil {
		meta.Raw = map[string]any{}
	}
	return meta, body, nil
}
