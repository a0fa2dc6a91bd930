package interfaces

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// Representation tags the markup dialect of a PageContent body.
type Representation string

const (
	// RepresentationStorage marks structured markup the destination system
	// understands directly (XML/XHTML sources).
	RepresentationStorage Representation = "STORAGE"
	// RepresentationWiki marks lightweight markup the destination renders
	// itself. Rendered Markdown is always wiki.
	RepresentationWiki Representation = "WIKI"
)

// String implements fmt.Stringer.
func (r Representation) String() string { return string(r) }

const defaultCharset = "utf-8"

// PageContent is the publishable body of one page. Values are immutable and
// only produced by the resolution pipeline once the source stream has been
// fully consumed.
type PageContent struct {
	content        string
	representation Representation
}

// NewPageContent builds a PageContent value.
func NewPageContent(content string, representation Representation) PageContent {
	return PageContent{content: content, representation: representation}
}

// Content returns the body as a UTF-8 string.
func (p PageContent) Content() string { return p.content }

// Representation returns the markup dialect tag.
func (p PageContent) Representation() Representation { return p.representation }

// Reader returns the body as a stream of UTF-8 bytes.
func (p PageContent) Reader() io.Reader {
	return strings.NewReader(p.content)
}

// ReaderWithCharset returns the body encoded in the named charset.
func (p PageContent) ReaderWithCharset(charset string) (io.Reader, error) {
	enc, name, err := lookupCharset(charset)
	if err != nil {
		return nil, err
	}
	if name == defaultCharset {
		return p.Reader(), nil
	}
	encoded, err := enc.NewEncoder().String(p.content)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, fmt.Sprintf("encode page content as %s", name)).
			WithTextCode(TextCodeCharset)
	}
	return bytes.NewReader([]byte(encoded)), nil
}

// ContentWithCharset reinterprets the body's UTF-8 bytes through the named
// charset. When the charset is the platform default (UTF-8) the content is
// returned verbatim.
func (p PageContent) ContentWithCharset(charset string) (string, error) {
	enc, name, err := lookupCharset(charset)
	if err != nil {
		return "", err
	}
	if name == defaultCharset {
		return p.content, nil
	}
	decoded, err := enc.NewDecoder().String(p.content)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryValidation, fmt.Sprintf("decode page content as %s", name)).
			WithTextCode(TextCodeCharset)
	}
	return decoded, nil
}

func lookupCharset(charset string) (encoding.Encoding, string, error) {
	enc, err := htmlindex.Get(strings.TrimSpace(charset))
	if err != nil {
		return nil, "", goerrors.Wrap(err, goerrors.CategoryValidation, fmt.Sprintf("unknown charset %q", charset)).
			WithTextCode(TextCodeCharset)
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		return nil, "", goerrors.Wrap(err, goerrors.CategoryValidation, fmt.Sprintf("unknown charset %q", charset)).
			WithTextCode(TextCodeCharset)
	}
	return enc, name, nil
}
