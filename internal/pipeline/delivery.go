package pipeline

import (
	"context"
	"errors"
	"io"
	"net/url"

	"github.com/goliatone/go-pagecontent/internal/resolver"
	"github.com/goliatone/go-pagecontent/pkg/future"
	"github.com/goliatone/go-pagecontent/pkg/interfaces"
)

var (
	// ErrNilCallback is returned when a delivery callback is missing.
	ErrNilCallback = errors.New("pipeline: callback is nil")
)

// ProcessURI resolves uri to a raw stream and hands it to callback. The
// callback receives exactly one of a failure or an open stream and owns
// closing the stream. Its result is returned as is. Only an invalid URI is
// returned as an error without invoking the callback.
func ProcessURI[T any](ctx context.Context, p *Processor, uri *url.URL, callback func(error, io.ReadCloser) T) (T, error) {
	var zero T
	if callback == nil {
		return zero, ErrNilCallback
	}
	resolved, err := resolver.ParseURI(uri)
	if err != nil {
		return zero, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	rc, err := p.resolver.Resolve(ctx, resolved)
	if err != nil {
		return callback(err, nil), nil
	}
	return callback(nil, rc), nil
}

// ProcessPageURI runs the full pipeline and delivers the result through a
// future. The future is settled before it is returned; an invalid URI is
// reported synchronously instead. model may be nil and an empty linkPrefix
// means no prefix.
func (p *Processor) ProcessPageURI(ctx context.Context, site interfaces.Site, page interfaces.Page, model interfaces.ModelPage, uri *url.URL, linkPrefix string) (*future.Future[interfaces.PageContent], error) {
	resolved, err := resolver.ParseURI(uri)
	if err != nil {
		return nil, err
	}

	result := future.New[interfaces.PageContent]()
	content, err := p.resolveCore(ctx, resolved, request{
		site:   site,
		page:   page,
		model:  model,
		prefix: linkPrefix,
	})
	if err != nil {
		result.Fail(err)
		return result, nil
	}
	result.Complete(content)
	return result, nil
}

// ProcessURIContent runs the full pipeline and passes the content to
// onSuccess, returning its result. Every pipeline failure, an invalid URI
// included, is wrapped in a processing error naming the source. Errors from
// onSuccess are returned unchanged.
func ProcessURIContent[T any](ctx context.Context, p *Processor, site interfaces.Site, page interfaces.Page, uri *url.URL, homePageTitle string, onSuccess func(interfaces.PageContent) (T, error)) (T, error) {
	var zero T
	if onSuccess == nil {
		return zero, ErrNilCallback
	}
	resolved, err := resolver.ParseURI(uri)
	if err != nil {
		return zero, interfaces.NewProcessingError(uriSource(uri), err)
	}

	content, err := p.resolveCore(ctx, resolved, request{
		site:   site,
		page:   page,
		prefix: homePageTitle,
	})
	if err != nil {
		return zero, interfaces.NewProcessingError(resolved.SchemeSpecificPart, err)
	}
	return onSuccess(content)
}

func uriSource(uri *url.URL) string {
	if uri == nil {
		return ""
	}
	return uri.String()
}
