// Package context carries request-scoped correlation identifiers.
package context

import "context"

type contextKey string

const (
	requestIDKey  contextKey = "observability_request_id"
	documentIDKey contextKey = "observability_document_id"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil || requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(requestIDKey).(string)
	return value
}

// WithDocumentID tags the context with the ID of the document being
// rendered so every log line of one render correlates.
func WithDocumentID(ctx context.Context, documentID string) context.Context {
	if ctx == nil || documentID == "" {
		return ctx
	}
	return context.WithValue(ctx, documentIDKey, documentID)
}

func DocumentIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(documentIDKey).(string)
	return value
}
