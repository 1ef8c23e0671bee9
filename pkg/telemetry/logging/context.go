package logging

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// Context keys for common log fields.
type contextKey string

const (
	// CompileIDKey is the context key for compile IDs.
	CompileIDKey contextKey = "compile_id"

	// EntryKey is the context key for the build entry being compiled.
	EntryKey contextKey = "entry"
)

// WithCompileID adds a compile ID to the context.
func WithCompileID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CompileIDKey, id)
}

// GetCompileID retrieves the compile ID from the context.
func GetCompileID(ctx context.Context) string {
	if id, ok := ctx.Value(CompileIDKey).(string); ok {
		return id
	}
	return ""
}

// WithEntry adds a build entry name to the context.
func WithEntry(ctx context.Context, entry string) context.Context {
	return context.WithValue(ctx, EntryKey, entry)
}

// GetEntry retrieves the build entry name from the context.
func GetEntry(ctx context.Context) string {
	if entry, ok := ctx.Value(EntryKey).(string); ok {
		return entry
	}
	return ""
}

// contextAttrs extracts common fields from context for logging.
// The trace ID comes from the active span, if any.
func contextAttrs(ctx context.Context) []slog.Attr {
	var attrs []slog.Attr

	if id := GetCompileID(ctx); id != "" {
		attrs = append(attrs, slog.String(string(CompileIDKey), id))
	}
	if entry := GetEntry(ctx); entry != "" {
		attrs = append(attrs, slog.String(string(EntryKey), entry))
	}
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		attrs = append(attrs, slog.String("trace_id", sc.TraceID().String()))
	}

	return attrs
}
