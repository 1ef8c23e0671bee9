package metrics

import (
	"context"
	"time"

	"mercator-hq/sassgate/pkg/sass"
)

// instrumentedEngine records a metric for every call into the wrapped engine.
type instrumentedEngine struct {
	next      sass.Engine
	collector *Collector
}

// InstrumentEngine wraps engine so that every compilation is recorded by
// collector. Configuration errors never reach the engine, so only
// compilation outcomes are observed here; use RecordCompile at the
// compiler level to count rejected options.
func InstrumentEngine(engine sass.Engine, collector *Collector) sass.Engine {
	if collector == nil {
		return engine
	}
	return &instrumentedEngine{next: engine, collector: collector}
}

func (e *instrumentedEngine) CompileSource(ctx context.Context, source string, opts sass.Options) (string, error) {
	start := time.Now()
	css, err := e.next.CompileSource(ctx, source, opts)
	e.collector.RecordCompile(KindSource, time.Since(start), len(css), err)
	return css, err
}

func (e *instrumentedEngine) CompileFile(ctx context.Context, path string, opts sass.Options) (string, error) {
	start := time.Now()
	css, err := e.next.CompileFile(ctx, path, opts)
	e.collector.RecordCompile(KindFile, time.Since(start), len(css), err)
	return css, err
}

func (e *instrumentedEngine) Version() string {
	return e.next.Version()
}
