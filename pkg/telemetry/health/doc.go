// Package health provides health check endpoints for watch mode.
//
// While `sassgate watch` serves its status endpoint, it exposes:
//
//   - /health: Liveness probe
//   - /ready: Readiness probe; degraded until a build succeeds, after a
//     failed build, or when the engine reports no library version
//   - /version: sassgate and native library versions
//
// Usage:
//
//	checker := health.New(engine)
//	report, err := runner.Run(ctx, entries)
//	checker.RecordBuild(report, err)
//	health.Register(mux, checker, health.VersionInfo{Version: version})
package health
