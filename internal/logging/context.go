package logging

import (
	"context"

	"github.com/goliatone/go-pagecontent/internal/util"
)

type contextKey string

const contextFieldsKey contextKey = "pagecontent.logging.fields"

// ContextWithFields returns a context carrying structured logging fields.
// Fields already present on ctx are kept; new values win on conflict.
func ContextWithFields(ctx context.Context, fields map[string]any) context.Context {
	if ctx == nil || len(fields) == 0 {
		return ctx
	}

	return context.WithValue(ctx, contextFieldsKey, util.MergeFields(ContextFields(ctx), fields))
}

// ContextFields returns a copy of the fields attached with ContextWithFields.
func ContextFields(ctx context.Context) map[string]any {
	if ctx == nil {
		return nil
	}
	fields, ok := ctx.Value(contextFieldsKey).(map[string]any)
	if !ok || len(fields) == 0 {
		return nil
	}
	return util.MergeFields(fields, nil)
}
