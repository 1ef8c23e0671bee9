// Package metrics provides Prometheus metrics collection for sassgate.
//
// # Metrics Categories
//
//   - Compile Metrics: compile count by kind and status, duration, output
//     size and rejected options by error code
//   - Build Metrics: build runs, duration, entry outcomes and watch rebuilds
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//
//	// Count every call into the native engine
//	engine := metrics.InstrumentEngine(libsass.New(), collector)
//
//	// Expose the registry
//	mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
//
// A nil *Collector is valid and records nothing.
package metrics
