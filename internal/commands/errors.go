package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-pagecontent/pkg/interfaces"
)

const (
	TextCodeInvalid          = "PAGECONTENT_COMMAND_INVALID"
	TextCodeCanceled         = "PAGECONTENT_COMMAND_CANCELED"
	TextCodeTimeout          = "PAGECONTENT_COMMAND_TIMEOUT"
	TextCodeContext          = "PAGECONTENT_COMMAND_CONTEXT_ERROR"
	TextCodeFailed           = "PAGECONTENT_COMMAND_FAILED"
	TextCodeURIRejected      = "PAGECONTENT_COMMAND_URI_REJECTED"
	TextCodeSourceMissing    = "PAGECONTENT_COMMAND_SOURCE_MISSING"
	TextCodeSourceUnreadable = "PAGECONTENT_COMMAND_SOURCE_UNREADABLE"
	TextCodeRenderFailed     = "PAGECONTENT_COMMAND_RENDER_FAILED"
	TextCodeProcessingFailed = "PAGECONTENT_COMMAND_PROCESSING_FAILED"
)

// pipelineCodes maps the category of a pipeline failure to the text code the
// command reports for it.
var pipelineCodes = map[goerrors.Category]string{
	interfaces.CategoryInvalidURI: TextCodeURIRejected,
	interfaces.CategoryNotFound:   TextCodeSourceMissing,
	interfaces.CategoryIO:         TextCodeSourceUnreadable,
	interfaces.CategoryTransform:  TextCodeRenderFailed,
	interfaces.CategoryProcessing: TextCodeProcessingFailed,
}

// PipelineCategory returns the outermost pipeline category in err's chain.
func PipelineCategory(err error) (goerrors.Category, bool) {
	for err != nil {
		var typed *goerrors.Error
		if !goerrors.As(err, &typed) {
			return "", false
		}
		if _, ok := pipelineCodes[typed.Category]; ok {
			return typed.Category, true
		}
		err = typed.Source
	}
	return "", false
}

func commandError(category goerrors.Category, textCode, message string, cause error, fields map[string]any) error {
	err := goerrors.New(message, category).WithTextCode(textCode)
	if len(fields) > 0 {
		err = err.WithMetadata(fields)
	}
	err.Source = cause
	return err
}

func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return commandError(goerrors.CategoryValidation, TextCodeInvalid, "resolve command rejected", err, nil)
}

func wrapContextError(err error, fields map[string]any) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, context.Canceled):
		return commandError(goerrors.CategoryCommand, TextCodeCanceled, "command cancelled before the page was resolved", err, fields)
	case errors.Is(err, context.DeadlineExceeded):
		return commandError(goerrors.CategoryCommand, TextCodeTimeout, "command timed out resolving the page", err, fields)
	default:
		return commandError(goerrors.CategoryCommand, TextCodeContext, "command context error", err, fields)
	}
}

// wrapExecuteError reports pipeline failures as command failures with a text
// code per pipeline category. The pipeline error stays in the chain so the
// interfaces predicates still match.
func wrapExecuteError(err error, fields map[string]any) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, goerrors.CategoryValidation) {
		return err
	}
	if category, ok := PipelineCategory(err); ok {
		meta := map[string]any{"pipeline_category": string(category)}
		for key, value := range fields {
			meta[key] = value
		}
		return commandError(goerrors.CategoryCommand, pipelineCodes[category], "resolve page failed", err, meta)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return wrapContextError(err, fields)
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return commandError(goerrors.CategoryCommand, TextCodeFailed, "command execution failed", err, fields)
}
