package logging

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ContextFields extracts correlation data from context.
func ContextFields(ctx context.Context) []zap.Field {
	fields := make([]zap.Field, 0, 6)

	if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
		sc := span.SpanContext()
		fields = append(fields,
			zap.String("trace_id", sc.TraceID().String()),
			zap.String("span_id", sc.SpanID().String()),
		)
	}

	if id := RequestIDFromContext(ctx); id != "" {
		fields = append(fields, zap.String("request.id", id))
	}
	if id := BundleIDFromContext(ctx); id != "" {
		fields = append(fields, zap.String("bundle.id", id))
	}
	if id := FetchIDFromContext(ctx); id != "" {
		fields = append(fields, zap.String("fetch.id", id))
	}

	return fields
}

type requestCtxKey struct{}
type bundleCtxKey struct{}
type fetchCtxKey struct{}
type loggerCtxKey struct{}

// WithRequestID adds an HTTP request ID to context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestCtxKey{}, id)
}

// RequestIDFromContext extracts the request ID from context.
func RequestIDFromContext(ctx context.Context) string {
	s, _ := ctx.Value(requestCtxKey{}).(string)
	return s
}

// WithBundleID adds the bundle being resolved to context.
func WithBundleID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, bundleCtxKey{}, id)
}

// BundleIDFromContext extracts the bundle ID from context.
func BundleIDFromContext(ctx context.Context) string {
	s, _ := ctx.Value(bundleCtxKey{}).(string)
	return s
}

// WithFetchID adds a fetch correlation ID to context.
func WithFetchID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, fetchCtxKey{}, id)
}

// FetchIDFromContext extracts the fetch correlation ID from context.
func FetchIDFromContext(ctx context.Context) string {
	s, _ := ctx.Value(fetchCtxKey{}).(string)
	return s
}

// WithLogger stores logger in context.
func WithLogger(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey{}, logger)
}

// FromContext retrieves logger from context.
// Returns a nop logger if not found.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(loggerCtxKey{}).(*Logger); ok {
		return l
	}
	return NewNop()
}
