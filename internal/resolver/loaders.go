package resolver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/goliatone/go-pagecontent/pkg/interfaces"
)

// FSLoader serves resources from an fs.FS.
type FSLoader struct {
	name string
	fsys fs.FS
}

var _ interfaces.ResourceLoader = (*FSLoader)(nil)

// NewFSLoader wraps fsys. name is only used in logs.
func NewFSLoader(name string, fsys fs.FS) *FSLoader {
	return &FSLoader{name: name, fsys: fsys}
}

// NewDirLoader serves resources rooted at dir on the local filesystem.
func NewDirLoader(dir string) *FSLoader {
	return NewFSLoader(dir, os.DirFS(dir))
}

// String implements fmt.Stringer.
func (l *FSLoader) String() string {
	return l.name
}

// Open implements interfaces.ResourceLoader.
func (l *FSLoader) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if l == nil || l.fsys == nil {
		return nil, fs.ErrNotExist
	}
	clean := path.Clean(strings.TrimLeft(name, "/"))
	if !fs.ValidPath(clean) || clean == "." {
		return nil, fmt.Errorf("resource loader %s: %q: %w", l.name, name, fs.ErrNotExist)
	}
	file, err := l.fsys.Open(clean)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err == nil && info.IsDir() {
		file.Close()
		return nil, fmt.Errorf("resource loader %s: %q is a directory: %w", l.name, name, fs.ErrNotExist)
	}
	return file, nil
}

// LoaderFunc adapts a function to interfaces.ResourceLoader.
type LoaderFunc func(ctx context.Context, name string) (io.ReadCloser, error)

// Open implements interfaces.ResourceLoader.
func (f LoaderFunc) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	return f(ctx, name)
}

type loaderContextKey struct{}

// WithResourceLoader attaches the caller's loader to ctx. It is tried before
// the module's own loaders.
func WithResourceLoader(ctx context.Context, loader interfaces.ResourceLoader) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if loader == nil {
		return ctx
	}
	return context.WithValue(ctx, loaderContextKey{}, loader)
}

// ResourceLoaderFromContext returns the loader attached with WithResourceLoader.
func ResourceLoaderFromContext(ctx context.Context) (interfaces.ResourceLoader, bool) {
	if ctx == nil {
		return nil, false
	}
	loader, ok := ctx.Value(loaderContextKey{}).(interfaces.ResourceLoader)
	return loader, ok && loader != nil
}

// openFirst tries each loader in order and stops at the first hit. Missing
// resources move on to the next loader; any other error is returned.
func openFirst(ctx context.Context, loaders []interfaces.ResourceLoader, name string) (io.ReadCloser, int, error) {
	for idx, loader := range loaders {
		if loader == nil {
			continue
		}
		rc, err := loader.Open(ctx, name)
		if err == nil && rc != nil {
			return rc, idx, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, idx, err
		}
	}
	return nil, -1, fs.ErrNotExist
}
