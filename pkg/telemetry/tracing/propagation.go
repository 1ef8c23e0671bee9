package tracing

import (
	"context"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// Trace context is handed to a command-line process through the environment:
//
//	TRACEPARENT=00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01
//	TRACESTATE=congo=t61rcWkgMzE
//
// A CI job or build tool that already traces its own run can set these so
// that sassgate's spans appear as children of the calling step.

// Environment variables carrying W3C trace context.
const (
	EnvTraceParent = "TRACEPARENT"
	EnvTraceState  = "TRACESTATE"
)

// Propagator returns the configured text map propagator.
func Propagator() propagation.TextMapPropagator {
	return otel.GetTextMapPropagator()
}

// ExtractFromMap extracts trace context from a string map.
func ExtractFromMap(ctx context.Context, carrier map[string]string) context.Context {
	return Propagator().Extract(ctx, propagation.MapCarrier(carrier))
}

// InjectToMap injects trace context into a string map.
func InjectToMap(ctx context.Context, carrier map[string]string) {
	Propagator().Inject(ctx, propagation.MapCarrier(carrier))
}

// ExtractFromEnv returns ctx carrying the parent trace named by TRACEPARENT
// and TRACESTATE. An absent or malformed TRACEPARENT leaves ctx unchanged.
func ExtractFromEnv(ctx context.Context) context.Context {
	traceparent := os.Getenv(EnvTraceParent)
	if !ValidateTraceParent(traceparent) {
		return ctx
	}

	carrier := map[string]string{"traceparent": traceparent}
	if state := os.Getenv(EnvTraceState); state != "" {
		carrier["tracestate"] = state
	}
	return ExtractFromMap(ctx, carrier)
}

// ValidateTraceParent validates the traceparent format.
//
// Format: version-trace_id-parent_id-trace_flags
//   - version: 2 hex digits (00)
//   - trace_id: 32 hex digits (128-bit)
//   - parent_id: 16 hex digits (64-bit)
//   - trace_flags: 2 hex digits (8-bit)
func ValidateTraceParent(traceparent string) bool {
	parts := strings.Split(traceparent, "-")
	if len(parts) != 4 {
		return false
	}

	for i, size := range []int{2, 32, 16, 2} {
		if len(parts[i]) != size || !isHexString(parts[i]) {
			return false
		}
	}

	// All-zero IDs are invalid
	if strings.Trim(parts[1], "0") == "" || strings.Trim(parts[2], "0") == "" {
		return false
	}

	return true
}

// isHexString checks if a string contains only lowercase hexadecimal characters.
func isHexString(s string) bool {
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			return false
		}
	}
	return true
}
