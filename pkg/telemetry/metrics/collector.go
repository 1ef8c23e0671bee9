package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/sassgate/pkg/config"
	"mercator-hq/sassgate/pkg/sass"
)

// Compile kinds.
const (
	KindSource = "source"
	KindFile   = "file"
)

// Compile and build statuses.
const (
	StatusSuccess            = "success"
	StatusCompilationError   = "compilation_error"
	StatusConfigurationError = "configuration_error"
	StatusError              = "error"
)

// Collector is the entry point for all Prometheus metrics in sassgate.
// It owns the registry and records metrics for compilations and builds.
//
// All Record methods are no-ops when metrics are disabled and safe to call
// on a nil *Collector.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	compileMetrics *CompileMetrics
	buildMetrics   *BuildMetrics
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{Enabled: true, Namespace: "sassgate"}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}

	c := &Collector{
		config:   cfg,
		registry: registry,
	}

	c.compileMetrics = NewCompileMetrics(cfg, registry)
	c.buildMetrics = NewBuildMetrics(cfg, registry)

	return c
}

func (c *Collector) enabled() bool {
	return c != nil && c.config.Enabled
}

// RecordCompile records a finished compilation of the given kind
// (KindSource or KindFile). The status is derived from err.
//
// Example:
//
//	start := time.Now()
//	css, err := compiler.CompileFile(ctx, "app.scss")
//	collector.RecordCompile(metrics.KindFile, time.Since(start), len(css), err)
func (c *Collector) RecordCompile(kind string, duration time.Duration, bytes int, err error) {
	if !c.enabled() {
		return
	}

	c.compileMetrics.RecordCompile(kind, Status(err), duration, bytes)

	var cfgErr *sass.ConfigurationError
	if errors.As(err, &cfgErr) {
		c.compileMetrics.RecordConfigurationError(cfgErr.Code)
	}
}

// RecordBuild records a finished build run.
func (c *Collector) RecordBuild(succeeded, failed int, duration time.Duration, err error) {
	if !c.enabled() {
		return
	}

	status := Status(err)
	if err == nil && failed > 0 {
		status = StatusCompilationError
	}
	c.buildMetrics.RecordBuild(status, succeeded, failed, duration)
}

// RecordRebuild records a rebuild triggered by a file change.
func (c *Collector) RecordRebuild() {
	if !c.enabled() {
		return
	}

	c.buildMetrics.RecordRebuild()
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Status maps an error to a metric status label.
func Status(err error) string {
	switch sass.Kind(err) {
	case "":
		if err == nil {
			return StatusSuccess
		}
		return StatusError
	case "configuration":
		return StatusConfigurationError
	default:
		return StatusCompilationError
	}
}
