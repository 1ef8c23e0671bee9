package config

import "time"

// Config is the root configuration structure for sassgate.
// It contains the compiler options, the build entries, watch mode settings
// and telemetry settings.
type Config struct {
	// Compiler contains the options handed to every compile call.
	Compiler CompilerConfig `yaml:"compiler"`

	// Build lists the files compiled by "sassgate build" and "sassgate watch".
	Build BuildConfig `yaml:"build"`

	// Watch contains file watching configuration.
	Watch WatchConfig `yaml:"watch"`

	// Telemetry contains configuration for observability including logging,
	// metrics, and distributed tracing.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// CompilerConfig contains the Sass compiler options.
type CompilerConfig struct {
	// Style is the CSS output style.
	// Options: "nested", "expanded", "compact", "compressed"
	// Default: "nested"
	Style string `yaml:"style"`

	// Precision is the number of digits kept for decimal numbers.
	// It is a pointer because 0 is a valid precision.
	// Default: 5
	Precision *int `yaml:"precision"`

	// Comments emits source line comments in the CSS.
	// Default: false
	Comments bool `yaml:"comments"`

	// IncludePaths are directories searched, in order, for imported files.
	// Relative paths are resolved against the working directory.
	IncludePaths []string `yaml:"include_paths"`

	// SourceMap contains source map settings.
	SourceMap SourceMapConfig `yaml:"source_map"`
}

// SourceMapConfig contains source map settings.
type SourceMapConfig struct {
	// Path is the source map file to write. Empty disables the map file.
	Path string `yaml:"path"`

	// Root is the directory recorded as the source map root.
	Root string `yaml:"root"`

	// OmitURL omits the sourceMappingURL comment from the CSS.
	// Default: false
	OmitURL bool `yaml:"omit_url"`

	// Embed embeds the source map in the CSS as a data URI.
	// Default: false
	Embed bool `yaml:"embed"`

	// Contents embeds the Sass sources in the source map.
	// Default: false
	Contents bool `yaml:"contents"`
}

// BuildConfig contains the files to compile.
type BuildConfig struct {
	// Entries are the input files and their CSS outputs.
	Entries []EntryConfig `yaml:"entries"`

	// OutputDir is used for entries without an explicit output. The output
	// name is the input base name with a ".css" extension.
	// Default: "." (next to the working directory)
	OutputDir string `yaml:"output_dir"`
}

// EntryConfig is a single input file and its output.
type EntryConfig struct {
	// Input is the Sass file to compile.
	Input string `yaml:"input"`

	// Output is the CSS file to write. "-" writes to standard output.
	Output string `yaml:"output"`
}

// WatchConfig contains file watching configuration.
type WatchConfig struct {
	// Debounce is the quiet period after the last change before rebuilding.
	// Default: 100ms
	Debounce time.Duration `yaml:"debounce"`

	// Extensions are the file extensions that trigger a rebuild.
	// Default: [".scss", ".sass"]
	Extensions []string `yaml:"extensions"`

	// Paths are additional directories to watch. Include paths and the
	// directories of build entries are always watched.
	Paths []string `yaml:"paths"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains distributed tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Namespace is the Prometheus metric namespace.
	// Default: "sassgate"
	Namespace string `yaml:"namespace"`

	// ListenAddress is where watch mode serves the metrics endpoint.
	// Default: "127.0.0.1:9464"
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path of the metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`
}

// TracingConfig contains OpenTelemetry tracing configuration.
type TracingConfig struct {
	// Enabled controls whether spans are exported.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Endpoint is the OTLP gRPC collector address.
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// ServiceName is the service.name resource attribute.
	// Default: "sassgate"
	ServiceName string `yaml:"service_name"`

	// SampleRatio is the fraction of traces to sample (0.0 to 1.0).
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// Insecure disables TLS to the collector.
	// Default: false
	Insecure bool `yaml:"insecure"`

	// Timeout bounds each export call.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}
