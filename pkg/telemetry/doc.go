// Package telemetry groups sassgate's observability packages.
//
//   - logging: slog-based structured logging with compile IDs
//   - metrics: Prometheus counters and histograms for compiles and builds
//   - tracing: OpenTelemetry spans around native engine calls
//   - health: liveness, readiness and version endpoints for watch mode
//
// metrics and tracing each provide an engine decorator, so instrumentation
// stays outside the sass package:
//
//	engine := tracing.TraceEngine(metrics.InstrumentEngine(libsass.New(), collector), tracer)
package telemetry
