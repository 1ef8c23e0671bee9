package config

import (
	"reflect"
	"testing"
)

func TestApplyDefaults_EmptyConfig(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Compiler.Style != DefaultStyle {
		t.Errorf("Compiler.Style = %q, want %q", cfg.Compiler.Style, DefaultStyle)
	}
	if cfg.Compiler.Precision == nil || *cfg.Compiler.Precision != DefaultPrecision {
		t.Errorf("Compiler.Precision = %v, want %d", cfg.Compiler.Precision, DefaultPrecision)
	}
	if cfg.Build.OutputDir != DefaultOutputDir {
		t.Errorf("Build.OutputDir = %q, want %q", cfg.Build.OutputDir, DefaultOutputDir)
	}
	if cfg.Watch.Debounce != DefaultWatchDebounce {
		t.Errorf("Watch.Debounce = %v, want %v", cfg.Watch.Debounce, DefaultWatchDebounce)
	}
	if !reflect.DeepEqual(cfg.Watch.Extensions, DefaultWatchExtensions) {
		t.Errorf("Watch.Extensions = %v, want %v", cfg.Watch.Extensions, DefaultWatchExtensions)
	}
	if cfg.Telemetry.Logging.Level != DefaultLoggingLevel {
		t.Errorf("Logging.Level = %q, want %q", cfg.Telemetry.Logging.Level, DefaultLoggingLevel)
	}
	if cfg.Telemetry.Metrics.Path != DefaultMetricsPath {
		t.Errorf("Metrics.Path = %q, want %q", cfg.Telemetry.Metrics.Path, DefaultMetricsPath)
	}
	if cfg.Telemetry.Tracing.SampleRatio != DefaultTracingSampleRatio {
		t.Errorf("Tracing.SampleRatio = %v, want %v", cfg.Telemetry.Tracing.SampleRatio, DefaultTracingSampleRatio)
	}
	if cfg.Compiler.Comments || cfg.Compiler.SourceMap.Embed || cfg.Telemetry.Metrics.Enabled {
		t.Error("boolean options must default to false")
	}
}

func TestApplyDefaults_PreservesExplicitValues(t *testing.T) {
	zero := 0
	cfg := &Config{
		Compiler: CompilerConfig{Style: "compressed", Precision: &zero},
		Watch:    WatchConfig{Extensions: []string{".scss"}},
	}
	ApplyDefaults(cfg)

	if cfg.Compiler.Style != "compressed" {
		t.Errorf("Compiler.Style = %q, want compressed", cfg.Compiler.Style)
	}
	if *cfg.Compiler.Precision != 0 {
		t.Errorf("explicit precision 0 replaced by %d", *cfg.Compiler.Precision)
	}
	if !reflect.DeepEqual(cfg.Watch.Extensions, []string{".scss"}) {
		t.Errorf("Watch.Extensions = %v", cfg.Watch.Extensions)
	}
}

func TestApplyDefaults_Idempotent(t *testing.T) {
	first := Default()
	second := Default()
	ApplyDefaults(second)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("ApplyDefaults is not idempotent:\n%+v\n%+v", first, second)
	}
}

func TestApplyDefaults_DoesNotAliasDefaultExtensions(t *testing.T) {
	cfg := Default()
	cfg.Watch.Extensions[0] = ".less"

	if DefaultWatchExtensions[0] != ".scss" {
		t.Error("modifying a config changed DefaultWatchExtensions")
	}
}
