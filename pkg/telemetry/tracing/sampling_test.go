package tracing

import (
	"context"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

func TestCreateSampler_RespectsParent(t *testing.T) {
	sampler, err := createSampler(0)
	if err != nil {
		t.Fatal(err)
	}

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	parent := trace.ContextWithRemoteSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
		Remote:     true,
	}))

	res := sampler.ShouldSample(sdktrace.SamplingParameters{ParentContext: parent, TraceID: traceID, Name: "compile"})
	if res.Decision != sdktrace.RecordAndSample {
		t.Errorf("decision = %v, want RecordAndSample for a sampled parent", res.Decision)
	}
}
