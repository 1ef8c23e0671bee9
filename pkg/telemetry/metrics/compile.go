package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/sassgate/pkg/config"
)

// CompileMetrics tracks metrics related to individual compilations.
//
// Metrics:
//   - sassgate_compile_compiles_total: Compile count by kind and status
//   - sassgate_compile_duration_seconds: Compile duration histogram
//   - sassgate_compile_output_bytes: Size of the generated CSS
//   - sassgate_compile_configuration_errors_total: Rejected options by code
type CompileMetrics struct {
	compilesTotal *prometheus.CounterVec

	duration *prometheus.HistogramVec

	outputBytes *prometheus.HistogramVec

	configurationErrors *prometheus.CounterVec
}

// NewCompileMetrics creates and registers compile metrics with the provided registry.
func NewCompileMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *CompileMetrics {
	cm := &CompileMetrics{
		compilesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: "compile",
				Name:      "compiles_total",
				Help:      "Total number of Sass compilations",
			},
			[]string{"kind", "status"},
		),

		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: "compile",
				Name:      "duration_seconds",
				Help:      "Duration of Sass compilations in seconds",
				// Stylesheets compile in milliseconds; large bundles in seconds
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"kind"},
		),

		outputBytes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: "compile",
				Name:      "output_bytes",
				Help:      "Size of the generated CSS in bytes",
				Buckets:   prometheus.ExponentialBuckets(256, 4, 8), // 256B to 4MB
			},
			[]string{"kind"},
		),

		configurationErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: "compile",
				Name:      "configuration_errors_total",
				Help:      "Total number of rejected compiler options by error code",
			},
			[]string{"code"},
		),
	}

	registry.MustRegister(
		cm.compilesTotal,
		cm.duration,
		cm.outputBytes,
		cm.configurationErrors,
	)

	return cm
}

// RecordCompile records a finished compilation.
func (cm *CompileMetrics) RecordCompile(kind, status string, duration time.Duration, bytes int) {
	cm.compilesTotal.WithLabelValues(kind, status).Inc()
	cm.duration.WithLabelValues(kind).Observe(duration.Seconds())
	if status == StatusSuccess {
		cm.outputBytes.WithLabelValues(kind).Observe(float64(bytes))
	}
}

// RecordConfigurationError records a rejected option.
func (cm *CompileMetrics) RecordConfigurationError(code int) {
	cm.configurationErrors.WithLabelValues(strconv.Itoa(code)).Inc()
}
