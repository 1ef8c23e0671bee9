package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"mercator-hq/sassgate/pkg/sass"
)

// EnvPrefix is the prefix of every environment variable override.
const EnvPrefix = "SASSGATE_"

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any errors.
// The configuration is not modified by environment variables; use LoadConfigWithEnvOverrides
// for that functionality.
func LoadConfig(path string) (*Config, error) {
	// Read the file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	// Parse YAML
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	// Apply defaults
	ApplyDefaults(&cfg)

	// Validate
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention SASSGATE_SECTION_FIELD (e.g., SASSGATE_COMPILER_STYLE).
// Environment variables always take precedence over file-based configuration.
//
// A missing file is not an error when optional is true; defaults are used
// instead.
//
// The loading sequence is:
// 1. Load YAML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string, optional bool) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		if !optional || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = Default()
	}

	// Apply environment variable overrides
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("invalid environment override: %w", err)
	}

	// Re-validate after overrides
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Unlike file values, malformed overrides are reported instead of ignored.
func applyEnvOverrides(cfg *Config) error {
	// Compiler overrides
	if val := os.Getenv(EnvPrefix + "COMPILER_STYLE"); val != "" {
		cfg.Compiler.Style = val
	}
	if val := os.Getenv(EnvPrefix + "COMPILER_PRECISION"); val != "" {
		i, err := strconv.Atoi(val)
		if err != nil {
			return &sass.ConfigurationError{
				Code:    sass.CodeInvalidPrecision,
				Field:   "precision",
				Message: fmt.Sprintf("%q is not an integer", val),
			}
		}
		cfg.Compiler.Precision = &i
	}
	if val := os.Getenv(EnvPrefix + "COMPILER_INCLUDE_PATHS"); val != "" {
		cfg.Compiler.IncludePaths = filepath.SplitList(val)
	}
	if val := os.Getenv(EnvPrefix + "COMPILER_MAP_PATH"); val != "" {
		cfg.Compiler.SourceMap.Path = val
	}
	if val := os.Getenv(EnvPrefix + "COMPILER_MAP_ROOT"); val != "" {
		cfg.Compiler.SourceMap.Root = val
	}

	flags := []struct {
		env   string
		field string
		dst   *bool
	}{
		{"COMPILER_COMMENTS", sass.FlagComments, &cfg.Compiler.Comments},
		{"COMPILER_OMIT_MAP_URL", sass.FlagOmitMapURL, &cfg.Compiler.SourceMap.OmitURL},
		{"COMPILER_MAP_EMBED", sass.FlagMapEmbed, &cfg.Compiler.SourceMap.Embed},
		{"COMPILER_MAP_CONTENTS", sass.FlagMapContents, &cfg.Compiler.SourceMap.Contents},
		{"METRICS_ENABLED", "metrics_enabled", &cfg.Telemetry.Metrics.Enabled},
		{"TRACING_ENABLED", "tracing_enabled", &cfg.Telemetry.Tracing.Enabled},
	}
	for _, f := range flags {
		val, ok := os.LookupEnv(EnvPrefix + f.env)
		if !ok || val == "" {
			continue
		}
		b, err := sass.ParseFlag(f.field, val)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, f.env, err)
		}
		*f.dst = b
	}

	// Telemetry overrides
	if val := os.Getenv(EnvPrefix + "LOG_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = strings.ToLower(val)
	}
	if val := os.Getenv(EnvPrefix + "LOG_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = strings.ToLower(val)
	}
	if val := os.Getenv(EnvPrefix + "METRICS_LISTEN_ADDRESS"); val != "" {
		cfg.Telemetry.Metrics.ListenAddress = val
	}
	if val := os.Getenv(EnvPrefix + "TRACING_ENDPOINT"); val != "" {
		cfg.Telemetry.Tracing.Endpoint = val
	}

	return nil
}
