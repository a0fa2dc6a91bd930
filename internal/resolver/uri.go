package resolver

import (
	"net/url"
	"strings"

	"github.com/goliatone/go-pagecontent/pkg/interfaces"
)

// SchemeClasspath selects bundled resources looked up through the resource
// loader chain.
const SchemeClasspath = "classpath"

// ResolvedURI is the per-call view of a validated URI.
type ResolvedURI struct {
	URI    *url.URL
	Scheme string
	// SchemeSpecificPart is the raw text between "scheme:" and the fragment.
	SchemeSpecificPart string
	// Path is used for extension classification only.
	Path string
}

// IsClasspath reports whether the URI targets bundled resources.
func (r ResolvedURI) IsClasspath() bool {
	return strings.EqualFold(r.Scheme, SchemeClasspath)
}

// ResourceName is the loader lookup key: the scheme-specific part without
// leading slashes or query.
func (r ResolvedURI) ResourceName() string {
	name := r.SchemeSpecificPart
	if idx := strings.IndexByte(name, '?'); idx >= 0 {
		name = name[:idx]
	}
	return strings.TrimLeft(name, "/")
}

// ParseURI validates the preconditions shared by every entry point: the URI
// must be non-nil and carry a scheme. No I/O happens here.
func ParseURI(u *url.URL) (ResolvedURI, error) {
	if u == nil {
		return ResolvedURI{}, interfaces.NewInvalidURIError("<nil>")
	}
	if strings.TrimSpace(u.Scheme) == "" {
		return ResolvedURI{}, interfaces.NewInvalidURIError(u.String())
	}

	return ResolvedURI{
		URI:                u,
		Scheme:             u.Scheme,
		SchemeSpecificPart: schemeSpecificPart(u),
		Path:               rawPath(u),
	}, nil
}

// ParseURIString parses raw and validates it like ParseURI.
func ParseURIString(raw string) (ResolvedURI, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ResolvedURI{}, interfaces.NewInvalidURIError(raw)
	}
	return ParseURI(u)
}

func schemeSpecificPart(u *url.URL) string {
	var b strings.Builder
	if u.Opaque != "" {
		b.WriteString(u.Opaque)
	} else {
		if u.Host != "" || u.User != nil {
			b.WriteString("//")
			if u.User != nil {
				b.WriteString(u.User.String())
				b.WriteByte('@')
			}
			b.WriteString(u.Host)
		}
		b.WriteString(u.EscapedPath())
	}
	if u.ForceQuery || u.RawQuery != "" {
		b.WriteByte('?')
		b.WriteString(u.RawQuery)
	}
	return b.String()
}

func rawPath(u *url.URL) string {
	if u.Opaque == "" {
		return u.EscapedPath()
	}
	path := u.Opaque
	if idx := strings.IndexByte(path, '?'); idx >= 0 {
		path = path[:idx]
	}
	return path
}
