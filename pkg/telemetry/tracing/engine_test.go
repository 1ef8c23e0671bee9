package tracing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.opentelemetry.io/otel/codes"

	"mercator-hq/sassgate/pkg/config"
	"mercator-hq/sassgate/pkg/sass"
	"mercator-hq/sassgate/pkg/sass/sasstest"
)

func TestTraceEngine_CompileSource(t *testing.T) {
	tracer, sr := newRecordingTracer(t)
	stub := sasstest.NewEngine()

	c, err := sass.New(TraceEngine(stub, tracer), sass.WithStyle(sass.StyleCompressed), sass.WithPrecision(3))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	css, err := c.Compile(context.Background(), "a { b: c; }")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	span := spans[0]
	if span.Name() != SpanCompileSource {
		t.Errorf("span name = %q", span.Name())
	}
	attrs := attrMap(span.Attributes())
	if attrs[AttrStyle].AsString() != "compressed" {
		t.Errorf("%s = %v", AttrStyle, attrs[AttrStyle])
	}
	if attrs[AttrPrecision].AsInt64() != 3 {
		t.Errorf("%s = %v", AttrPrecision, attrs[AttrPrecision])
	}
	if attrs[AttrOutputBytes].AsInt64() != int64(len(css)) {
		t.Errorf("%s = %v, want %d", AttrOutputBytes, attrs[AttrOutputBytes], len(css))
	}
	if span.Status().Code != codes.Ok {
		t.Errorf("status = %+v", span.Status())
	}
}

func TestTraceEngine_CompilationError(t *testing.T) {
	tracer, sr := newRecordingTracer(t)

	dir := t.TempDir()
	file := filepath.Join(dir, "broken.scss")
	if err := os.WriteFile(file, []byte("a {\n  @error \"nope\";\n}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := sass.New(TraceEngine(sasstest.NewEngine(), tracer))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = c.CompileFile(context.Background(), file)
	if !errors.Is(err, sass.ErrCompilation) {
		t.Fatalf("expected compilation error, got %v", err)
	}

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	span := spans[0]
	if span.Name() != SpanCompileFile {
		t.Errorf("span name = %q", span.Name())
	}
	if span.Status().Code != codes.Error {
		t.Errorf("status = %+v, want Error", span.Status())
	}
	attrs := attrMap(span.Attributes())
	if attrs[AttrFile].AsString() != file {
		t.Errorf("%s = %v", AttrFile, attrs[AttrFile])
	}
	if attrs[AttrErrorKind].AsString() != "compilation" {
		t.Errorf("%s = %v", AttrErrorKind, attrs[AttrErrorKind])
	}
	if attrs[AttrErrorLine].AsInt64() != 2 {
		t.Errorf("%s = %v, want 2", AttrErrorLine, attrs[AttrErrorLine])
	}
}

func TestTraceEngine_ConfigurationErrorNeverReachesEngine(t *testing.T) {
	tracer, sr := newRecordingTracer(t)

	c, err := sass.New(TraceEngine(sasstest.NewEngine(), tracer))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := c.CompileFile(context.Background(), ""); !errors.Is(err, sass.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if n := len(sr.Ended()); n != 0 {
		t.Errorf("expected no spans, got %d", n)
	}
}

func TestTraceEngine_Disabled(t *testing.T) {
	stub := sasstest.NewEngine()

	if TraceEngine(stub, nil) != sass.Engine(stub) {
		t.Error("nil tracer should return the engine unchanged")
	}

	disabled, err := New(&config.TracingConfig{}, "test")
	if err != nil {
		t.Fatal(err)
	}
	if TraceEngine(stub, disabled) != sass.Engine(stub) {
		t.Error("disabled tracer should return the engine unchanged")
	}
}

func TestSetErrorAttributes_ConfigurationError(t *testing.T) {
	tracer, sr := newRecordingTracer(t)

	_, span := tracer.Start(context.Background(), "configure")
	SetErrorAttributes(span, &sass.ConfigurationError{Code: sass.CodeMapRoot, Field: "map_root"})
	span.End()

	attrs := attrMap(sr.Ended()[0].Attributes())
	if attrs[AttrErrorCode].AsInt64() != sass.CodeMapRoot {
		t.Errorf("%s = %v", AttrErrorCode, attrs[AttrErrorCode])
	}
	if attrs[AttrErrorKind].AsString() != "configuration" {
		t.Errorf("%s = %v", AttrErrorKind, attrs[AttrErrorKind])
	}
}
