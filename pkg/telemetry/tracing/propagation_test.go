package tracing

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

const validTraceParent = "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"

func TestValidateTraceParent(t *testing.T) {
	tests := []struct {
		name        string
		traceparent string
		want        bool
	}{
		{name: "valid", traceparent: validTraceParent, want: true},
		{name: "not sampled", traceparent: "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-00", want: true},
		{name: "empty", traceparent: "", want: false},
		{name: "too few parts", traceparent: "00-4bf92f3577b34da6a3ce929d0e0e4736-01", want: false},
		{name: "short trace id", traceparent: "00-4bf92f3577b34da6-00f067aa0ba902b7-01", want: false},
		{name: "uppercase hex", traceparent: "00-4BF92F3577B34DA6A3CE929D0E0E4736-00f067aa0ba902b7-01", want: false},
		{name: "zero trace id", traceparent: "00-00000000000000000000000000000000-00f067aa0ba902b7-01", want: false},
		{name: "zero parent id", traceparent: "00-4bf92f3577b34da6a3ce929d0e0e4736-0000000000000000-01", want: false},
		{name: "non hex flags", traceparent: "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-zz", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateTraceParent(tt.traceparent); got != tt.want {
				t.Errorf("ValidateTraceParent(%q) = %v, want %v", tt.traceparent, got, tt.want)
			}
		})
	}
}

func TestExtractFromEnv(t *testing.T) {
	tracer, sr := newRecordingTracer(t)

	t.Setenv(EnvTraceParent, validTraceParent)
	t.Setenv(EnvTraceState, "congo=t61rcWkgMzE")

	ctx := ExtractFromEnv(context.Background())
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsRemote() || sc.TraceID().String() != "4bf92f3577b34da6a3ce929d0e0e4736" {
		t.Fatalf("unexpected span context: %+v", sc)
	}
	if sc.TraceState().Get("congo") != "t61rcWkgMzE" {
		t.Errorf("tracestate not propagated: %q", sc.TraceState().String())
	}

	_, span := tracer.Start(ctx, "build")
	span.End()

	got := sr.Ended()[0]
	if got.Parent().SpanID().String() != "00f067aa0ba902b7" {
		t.Errorf("parent span id = %s", got.Parent().SpanID())
	}
}

func TestExtractFromEnv_Invalid(t *testing.T) {
	newRecordingTracer(t)
	t.Setenv(EnvTraceParent, "garbage")

	ctx := context.Background()
	if got := ExtractFromEnv(ctx); got != ctx {
		t.Error("malformed TRACEPARENT should leave the context unchanged")
	}
}

func TestInjectRoundTrip(t *testing.T) {
	tracer, _ := newRecordingTracer(t)

	ctx, span := tracer.Start(context.Background(), "parent")
	defer span.End()

	carrier := map[string]string{}
	InjectToMap(ctx, carrier)
	if !ValidateTraceParent(carrier["traceparent"]) {
		t.Fatalf("injected traceparent invalid: %q", carrier["traceparent"])
	}

	extracted := ExtractFromMap(context.Background(), carrier)
	if TraceID(extracted) != TraceID(ctx) {
		t.Errorf("TraceID = %q, want %q", TraceID(extracted), TraceID(ctx))
	}
}
