package interfaces

import (
	"context"
	"io"
	"net/url"
)

// Site is the page tree being published. The pipeline only forwards it to
// the markdown transformer.
type Site interface {
	SpaceKey() string
	Home() Page
}

// Page is one node of the site tree. Only the capabilities the pipeline
// reads are exposed.
type Page interface {
	Name() string
	URI() *url.URL
	// IgnoreVariables reports whether the page opts out of variable
	// substitution, which also disables link prefixing.
	IgnoreVariables() bool
}

// ModelPage is a page already known to the destination system.
type ModelPage interface {
	ID() string
	Title() string
}

// ResourceLoader looks up bundled resources by slash-separated name. A
// missing resource is reported with an error matching fs.ErrNotExist so
// callers can move on to the next loader.
type ResourceLoader interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}
