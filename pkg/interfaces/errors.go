package interfaces

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

// Error categories shared by every delivery contract. A processing error
// keeps the typed cause in its chain, so the predicates below match either.
const (
	CategoryInvalidURI goerrors.Category = "pagecontent.invalid_uri"
	CategoryNotFound   goerrors.Category = "pagecontent.not_found"
	CategoryIO         goerrors.Category = "pagecontent.io"
	CategoryTransform  goerrors.Category = "pagecontent.transform"
	CategoryProcessing goerrors.Category = "pagecontent.processing"
)

const (
	TextCodeInvalidURI = "PAGECONTENT_INVALID_URI"
	TextCodeNotFound   = "PAGECONTENT_RESOURCE_NOT_FOUND"
	TextCodeIO         = "PAGECONTENT_IO_FAILED"
	TextCodeTransform  = "PAGECONTENT_TRANSFORM_FAILED"
	TextCodeProcessing = "PAGECONTENT_PROCESSING_FAILED"
	TextCodeCharset    = "PAGECONTENT_CHARSET_INVALID"
)

var (
	ErrInvalidURI       = errors.New("pagecontent: invalid uri")
	ErrResourceNotFound = errors.New("pagecontent: resource not found")
	ErrIO               = errors.New("pagecontent: io failure")
	ErrTransform        = errors.New("pagecontent: transform failure")
)

// NewInvalidURIError reports a nil URI or a URI without scheme.
func NewInvalidURIError(uri string) error {
	return newError(CategoryInvalidURI, TextCodeInvalidURI, fmt.Sprintf("uri [%s] is invalid!", uri), ErrInvalidURI,
		map[string]any{"uri": uri})
}

// NewResourceNotFoundError reports a resource missing from every loader.
func NewResourceNotFoundError(path string) error {
	return newError(CategoryNotFound, TextCodeNotFound, fmt.Sprintf("resource [%s] doesn't exist in any resource loader", path), ErrResourceNotFound,
		map[string]any{"resource": path})
}

// NewIOError reports an open or read failure for source.
func NewIOError(source string, cause error) error {
	if cause == nil {
		cause = ErrIO
	}
	return newError(CategoryIO, TextCodeIO, fmt.Sprintf("error opening/reading [%s]", source), cause,
		map[string]any{"source": source})
}

// NewTransformError reports a decode or render failure for source.
func NewTransformError(source string, cause error) error {
	if cause == nil {
		cause = ErrTransform
	}
	return newError(CategoryTransform, TextCodeTransform, fmt.Sprintf("error processing markdown for [%s]", source), cause,
		map[string]any{"source": source})
}

// NewProcessingError folds any pipeline failure into the single error shape
// used by the return-or-error delivery contract. errors.Unwrap yields cause.
func NewProcessingError(source string, cause error) error {
	meta := map[string]any{"source": source}
	var typed *goerrors.Error
	if errors.As(cause, &typed) {
		meta["cause_category"] = string(typed.Category)
	}
	return newError(CategoryProcessing, TextCodeProcessing, fmt.Sprintf("error processing source [%s]", source), cause, meta)
}

// newError always allocates a fresh error. goerrors.Wrap would clone a
// categorised cause and keep its category.
func newError(category goerrors.Category, textCode, message string, cause error, meta map[string]any) *goerrors.Error {
	err := goerrors.New(message, category).
		WithTextCode(textCode).
		WithMetadata(meta)
	err.Source = cause
	return err
}

// HasCategory reports whether any goerrors.Error in err's chain carries
// category.
func HasCategory(err error, category goerrors.Category) bool {
	for err != nil {
		var typed *goerrors.Error
		if !errors.As(err, &typed) {
			return false
		}
		if typed.Category == category {
			return true
		}
		err = typed.Source
	}
	return false
}

// CategoryOf returns the category of the outermost goerrors.Error in err's
// chain, or "" when there is none.
func CategoryOf(err error) goerrors.Category {
	var typed *goerrors.Error
	if errors.As(err, &typed) {
		return typed.Category
	}
	return ""
}

func IsInvalidURI(err error) bool { return HasCategory(err, CategoryInvalidURI) }
func IsNotFound(err error) bool   { return HasCategory(err, CategoryNotFound) }
func IsIO(err error) bool         { return HasCategory(err, CategoryIO) }
func IsTransform(err error) bool  { return HasCategory(err, CategoryTransform) }
func IsProcessing(err error) bool { return HasCategory(err, CategoryProcessing) }
