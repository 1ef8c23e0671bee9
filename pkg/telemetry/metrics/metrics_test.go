package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"mercator-hq/sassgate/pkg/config"
	"mercator-hq/sassgate/pkg/sass"
	"mercator-hq/sassgate/pkg/sass/sasstest"
)

// Helper function to create test config
func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{
		Enabled:   true,
		Namespace: "test",
	}
}

func TestCollector_NewCollector(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()

	collector := NewCollector(cfg, registry)

	if collector.Registry() != registry {
		t.Error("Collector registry not set correctly")
	}

	defaulted := NewCollector(&config.MetricsConfig{}, nil)
	if defaulted.config.Namespace != config.DefaultMetricsNamespace {
		t.Errorf("Namespace = %q, want default", defaulted.config.Namespace)
	}
}

func TestCollector_RecordCompile(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	tests := []struct {
		name       string
		kind       string
		err        error
		wantStatus string
	}{
		{name: "success", kind: KindSource, wantStatus: StatusSuccess},
		{name: "compilation error", kind: KindFile, err: &sass.CompilationError{Status: 1, Message: "bad"}, wantStatus: StatusCompilationError},
		{name: "configuration error", kind: KindFile, err: &sass.ConfigurationError{Code: sass.CodeUnreadableFile}, wantStatus: StatusConfigurationError},
		{name: "other error", kind: KindSource, err: errors.New("boom"), wantStatus: StatusError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collector.RecordCompile(tt.kind, 5*time.Millisecond, 128, tt.err)

			count := testutil.ToFloat64(collector.compileMetrics.compilesTotal.WithLabelValues(tt.kind, tt.wantStatus))
			if count != 1 {
				t.Errorf("compiles_total{%s,%s} = %f, want 1", tt.kind, tt.wantStatus, count)
			}
		})
	}

	code := testutil.ToFloat64(collector.compileMetrics.configurationErrors.WithLabelValues("1435750470"))
	if code != 1 {
		t.Errorf("configuration_errors_total{code=1435750470} = %f, want 1", code)
	}
}

func TestCollector_Disabled(t *testing.T) {
	collector := NewCollector(&config.MetricsConfig{Enabled: false}, nil)

	collector.RecordCompile(KindSource, time.Millisecond, 10, nil)
	collector.RecordBuild(1, 0, time.Millisecond, nil)
	collector.RecordRebuild()

	if n := testutil.CollectAndCount(collector.compileMetrics.compilesTotal); n != 0 {
		t.Errorf("expected no compile series when disabled, got %d", n)
	}

	var nilCollector *Collector
	nilCollector.RecordCompile(KindFile, time.Millisecond, 0, nil)
	nilCollector.RecordRebuild()
}

func TestCollector_RecordBuild(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	collector.RecordBuild(3, 1, 40*time.Millisecond, nil)
	collector.RecordBuild(0, 0, time.Millisecond, &sass.ConfigurationError{Code: sass.CodeIncludePath})
	collector.RecordRebuild()
	collector.RecordRebuild()

	if got := testutil.ToFloat64(collector.buildMetrics.runsTotal.WithLabelValues(StatusCompilationError)); got != 1 {
		t.Errorf("runs_total{compilation_error} = %f, want 1", got)
	}
	if got := testutil.ToFloat64(collector.buildMetrics.runsTotal.WithLabelValues(StatusConfigurationError)); got != 1 {
		t.Errorf("runs_total{configuration_error} = %f, want 1", got)
	}
	if got := testutil.ToFloat64(collector.buildMetrics.rebuildsTotal); got != 2 {
		t.Errorf("rebuilds_total = %f, want 2", got)
	}
}

func TestInstrumentEngine(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	stub := sasstest.NewEngine()
	engine := InstrumentEngine(stub, collector)

	c, err := sass.New(engine)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := c.Compile(context.Background(), "a { b: c; }"); err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if _, err := c.Compile(context.Background(), "@error \"nope\";"); !errors.Is(err, sass.ErrCompilation) {
		t.Fatalf("expected compilation error, got %v", err)
	}

	if got := testutil.ToFloat64(collector.compileMetrics.compilesTotal.WithLabelValues(KindSource, StatusSuccess)); got != 1 {
		t.Errorf("success count = %f, want 1", got)
	}
	if got := testutil.ToFloat64(collector.compileMetrics.compilesTotal.WithLabelValues(KindSource, StatusCompilationError)); got != 1 {
		t.Errorf("failure count = %f, want 1", got)
	}
	if engine.Version() != stub.Version() {
		t.Errorf("Version() = %q, want %q", engine.Version(), stub.Version())
	}

	if InstrumentEngine(stub, nil) != sass.Engine(stub) {
		t.Error("nil collector should return the engine unchanged")
	}
}

func TestCollector_Handler(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	collector.RecordCompile(KindFile, time.Millisecond, 64, nil)

	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "test_compile_compiles_total") {
		t.Errorf("metrics output missing compile counter:\n%s", rec.Body.String())
	}
}
