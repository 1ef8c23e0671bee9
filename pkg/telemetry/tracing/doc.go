// Package tracing provides OpenTelemetry tracing for sassgate.
//
// # Overview
//
// Spans are exported to an OTLP gRPC collector. Each compilation handed to
// the native engine gets a span carrying the effective options, the input
// and, on failure, the error location:
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing, version)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	engine := tracing.TraceEngine(libsass.New(), tracer)
//
// # Trace Context Propagation
//
// A calling build system can pass its trace through the environment using
// W3C Trace Context; ExtractFromEnv reads it:
//
//	TRACEPARENT=00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01
//
// # Sampling
//
// sample_ratio selects the fraction of root traces to keep. A sampled
// parent from TRACEPARENT is always honored.
package tracing
