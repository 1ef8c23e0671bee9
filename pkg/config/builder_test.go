package config

// ConfigBuilder provides a fluent API for building Config instances in tests.
// It starts with default values and allows selective overrides.
type ConfigBuilder struct {
	cfg Config
}

// NewTestConfig creates a new ConfigBuilder with defaults applied.
// The resulting configuration is valid and can be used immediately.
func NewTestConfig() *ConfigBuilder {
	var cfg Config
	ApplyDefaults(&cfg)
	return &ConfigBuilder{cfg: cfg}
}

// Build returns the built Config instance.
func (b *ConfigBuilder) Build() *Config {
	return &b.cfg
}

// WithStyle sets the compiler style.
func (b *ConfigBuilder) WithStyle(style string) *ConfigBuilder {
	b.cfg.Compiler.Style = style
	return b
}

// WithPrecision sets the compiler precision.
func (b *ConfigBuilder) WithPrecision(n int) *ConfigBuilder {
	b.cfg.Compiler.Precision = &n
	return b
}

// WithIncludePaths sets the compiler include paths.
func (b *ConfigBuilder) WithIncludePaths(paths ...string) *ConfigBuilder {
	b.cfg.Compiler.IncludePaths = paths
	return b
}

// WithEntry appends a build entry.
func (b *ConfigBuilder) WithEntry(input, output string) *ConfigBuilder {
	b.cfg.Build.Entries = append(b.cfg.Build.Entries, EntryConfig{Input: input, Output: output})
	return b
}

// WithLogLevel sets the logging level.
func (b *ConfigBuilder) WithLogLevel(level string) *ConfigBuilder {
	b.cfg.Telemetry.Logging.Level = level
	return b
}

// WithMetrics enables metrics on the given address.
func (b *ConfigBuilder) WithMetrics(addr string) *ConfigBuilder {
	b.cfg.Telemetry.Metrics.Enabled = true
	b.cfg.Telemetry.Metrics.ListenAddress = addr
	return b
}
