package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"mercator-hq/sassgate/pkg/sass"
)

// Span names.
const (
	SpanCompileSource = "sass.compile_source"
	SpanCompileFile   = "sass.compile_file"
)

type tracedEngine struct {
	next   sass.Engine
	tracer *Tracer
}

// TraceEngine wraps engine so that every compilation runs inside a span.
// A nil or disabled tracer returns engine unchanged.
func TraceEngine(engine sass.Engine, tracer *Tracer) sass.Engine {
	if tracer == nil || !tracer.Enabled() {
		return engine
	}
	return &tracedEngine{next: engine, tracer: tracer}
}

func (e *tracedEngine) CompileSource(ctx context.Context, source string, opts sass.Options) (string, error) {
	ctx, span := e.tracer.Start(ctx, SpanCompileSource,
		trace.WithAttributes(OptionAttributes(opts)...),
		trace.WithAttributes(
			attribute.String(AttrKind, "source"),
			attribute.Int(AttrInputBytes, len(source)),
		),
	)
	defer span.End()

	css, err := e.next.CompileSource(ctx, source, opts)
	finish(span, css, err)
	return css, err
}

func (e *tracedEngine) CompileFile(ctx context.Context, path string, opts sass.Options) (string, error) {
	ctx, span := e.tracer.Start(ctx, SpanCompileFile,
		trace.WithAttributes(OptionAttributes(opts)...),
		trace.WithAttributes(
			attribute.String(AttrKind, "file"),
			attribute.String(AttrFile, path),
		),
	)
	defer span.End()

	css, err := e.next.CompileFile(ctx, path, opts)
	finish(span, css, err)
	return css, err
}

func (e *tracedEngine) Version() string {
	return e.next.Version()
}

func finish(span trace.Span, css string, err error) {
	if err != nil {
		SetErrorAttributes(span, err)
		return
	}
	span.SetAttributes(attribute.Int(AttrOutputBytes, len(css)))
	SetStatus(span, nil)
}
