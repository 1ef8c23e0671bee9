package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/sassgate/pkg/config"
)

// BuildMetrics tracks build runs and watch-triggered rebuilds.
//
// Metrics:
//   - sassgate_build_runs_total: Build count by status
//   - sassgate_build_duration_seconds: Build duration histogram
//   - sassgate_build_entries: Entries in the most recent build by outcome
//   - sassgate_build_rebuilds_total: Rebuilds triggered by file changes
type BuildMetrics struct {
	runsTotal *prometheus.CounterVec

	duration prometheus.Histogram

	entries *prometheus.GaugeVec

	rebuildsTotal prometheus.Counter
}

// NewBuildMetrics creates and registers build metrics with the provided registry.
func NewBuildMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *BuildMetrics {
	bm := &BuildMetrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: "build",
				Name:      "runs_total",
				Help:      "Total number of build runs",
			},
			[]string{"status"},
		),

		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: "build",
				Name:      "duration_seconds",
				Help:      "Duration of build runs in seconds",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
			},
		),

		entries: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: "build",
				Name:      "entries",
				Help:      "Number of entries in the most recent build by outcome",
			},
			[]string{"outcome"},
		),

		rebuildsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: "build",
				Name:      "rebuilds_total",
				Help:      "Total number of rebuilds triggered by file changes",
			},
		),
	}

	registry.MustRegister(
		bm.runsTotal,
		bm.duration,
		bm.entries,
		bm.rebuildsTotal,
	)

	return bm
}

// RecordBuild records a finished build run.
func (bm *BuildMetrics) RecordBuild(status string, succeeded, failed int, duration time.Duration) {
	bm.runsTotal.WithLabelValues(status).Inc()
	bm.duration.Observe(duration.Seconds())
	bm.entries.WithLabelValues("succeeded").Set(float64(succeeded))
	bm.entries.WithLabelValues("failed").Set(float64(failed))
}

// RecordRebuild records a rebuild triggered by the watcher.
func (bm *BuildMetrics) RecordRebuild() {
	bm.rebuildsTotal.Inc()
}
