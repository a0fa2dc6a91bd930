// Package resolver opens the raw stream behind a page URI. Classpath URIs go
// through an ordered chain of resource loaders; http(s) and file URIs are
// opened directly.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/goliatone/go-pagecontent/internal/logging"
	"github.com/goliatone/go-pagecontent/internal/util"
	"github.com/goliatone/go-pagecontent/pkg/interfaces"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "go-pagecontent/1.0"
	defaultAccept    = "text/markdown, application/xhtml+xml, application/xml, text/plain;q=0.9, */*;q=0.8"
)

// Config tunes network retrieval.
type Config struct {
	Timeout   time.Duration
	UserAgent string
	// Accept overrides the Accept header sent on http(s) requests.
	Accept string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLoaders appends module-owned resource loaders, tried after the loader
// carried on the call context.
func WithLoaders(loaders ...interfaces.ResourceLoader) Option {
	return func(r *Resolver) {
		for _, loader := range loaders {
			if loader != nil {
				r.loaders = append(r.loaders, loader)
			}
		}
	}
}

// WithHTTPClient replaces the client used for http(s) URIs.
func WithHTTPClient(client *http.Client) Option {
	return func(r *Resolver) {
		if client != nil {
			r.client = client
		}
	}
}

// WithLogger sets the resolver logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Resolver dispatches on URI scheme. It holds no per-call state and is safe
// for concurrent use.
type Resolver struct {
	client    *http.Client
	userAgent string
	accept    string
	loaders   []interfaces.ResourceLoader
	logger    interfaces.Logger
}

// New creates a Resolver.
func New(cfg Config, opts ...Option) *Resolver {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	r := &Resolver{
		client:    &http.Client{Timeout: timeout},
		userAgent: util.FirstNonBlank(cfg.UserAgent, defaultUserAgent),
		accept:    util.FirstNonBlank(cfg.Accept, defaultAccept),
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve opens the stream behind resolved. The caller owns the returned
// stream and must close it.
func (r *Resolver) Resolve(ctx context.Context, resolved ResolvedURI) (io.ReadCloser, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if resolved.URI == nil || resolved.Scheme == "" {
		return nil, interfaces.NewInvalidURIError(resolved.SchemeSpecificPart)
	}

	if resolved.IsClasspath() {
		return r.openResource(ctx, resolved)
	}

	switch strings.ToLower(resolved.Scheme) {
	case "http", "https":
		return r.openHTTP(ctx, resolved)
	case "file":
		return r.openFile(ctx, resolved)
	default:
		return nil, interfaces.NewIOError(resolved.SchemeSpecificPart,
			fmt.Errorf("unsupported scheme %q", resolved.Scheme))
	}
}

// ResolveURL validates u and opens its stream.
func (r *Resolver) ResolveURL(ctx context.Context, u *url.URL) (io.ReadCloser, error) {
	resolved, err := ParseURI(u)
	if err != nil {
		return nil, err
	}
	return r.Resolve(ctx, resolved)
}

func (r *Resolver) chain(ctx context.Context) []interfaces.ResourceLoader {
	loaders := make([]interfaces.ResourceLoader, 0, len(r.loaders)+1)
	if loader, ok := ResourceLoaderFromContext(ctx); ok {
		loaders = append(loaders, loader)
	}
	return append(loaders, r.loaders...)
}

func (r *Resolver) openResource(ctx context.Context, resolved ResolvedURI) (io.ReadCloser, error) {
	name := resolved.ResourceName()
	loaders := r.chain(ctx)

	rc, idx, err := openFirst(ctx, loaders, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, interfaces.NewResourceNotFoundError(resolved.SchemeSpecificPart)
		}
		return nil, interfaces.NewIOError(resolved.SchemeSpecificPart, err)
	}
	if idx > 0 {
		r.logger.Debug("resolver.classpath.fallback", "resource", name, "loader_index", idx)
	}
	return rc, nil
}

func (r *Resolver) openHTTP(ctx context.Context, resolved ResolvedURI) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resolved.URI.String(), nil)
	if err != nil {
		return nil, interfaces.NewIOError(resolved.SchemeSpecificPart, err)
	}
	req.Header.Set("User-Agent", r.userAgent)
	req.Header.Set("Accept", r.accept)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, interfaces.NewIOError(resolved.SchemeSpecificPart, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, interfaces.NewIOError(resolved.SchemeSpecificPart,
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	return resp.Body, nil
}

func (r *Resolver) openFile(ctx context.Context, resolved ResolvedURI) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, interfaces.NewIOError(resolved.SchemeSpecificPart, err)
	}
	path := resolved.URI.Path
	if path == "" {
		path = resolved.URI.Opaque
	}
	if path == "" {
		return nil, interfaces.NewIOError(resolved.SchemeSpecificPart, errors.New("empty file path"))
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, interfaces.NewIOError(resolved.SchemeSpecificPart, err)
	}
	return file, nil
}
