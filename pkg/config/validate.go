package config

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"mercator-hq/sassgate/pkg/sass"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "compiler.style").
	Field string

	// Message is a human-readable error message.
	Message string

	// Code is the stable sass error code, if the failure maps to one.
	Code int
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Is reports whether target is sass.ErrConfiguration, so callers can treat
// configuration file problems like any other configuration error.
func (e ValidationError) Is(target error) bool {
	return target == sass.ErrConfiguration
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together.
//
// Validate does not touch the filesystem; paths are checked when the
// options are applied to a compiler.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateCompiler(&cfg.Compiler)...)
	errs = append(errs, validateBuild(&cfg.Build)...)
	errs = append(errs, validateWatch(&cfg.Watch)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

// validateCompiler validates compiler options.
func validateCompiler(cfg *CompilerConfig) []FieldError {
	var errs []FieldError

	if _, err := sass.ParseStyle(cfg.Style); err != nil {
		errs = append(errs, fieldErrorFrom("compiler.style", err))
	}

	if cfg.Precision != nil {
		if err := sass.ValidatePrecision(*cfg.Precision); err != nil {
			errs = append(errs, fieldErrorFrom("compiler.precision", err))
		}
	}

	for i, p := range cfg.IncludePaths {
		if strings.TrimSpace(p) == "" {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("compiler.include_paths[%d]", i),
				Message: "include path must not be empty",
				Code:    sass.CodeIncludePath,
			})
		}
	}

	return errs
}

// validateBuild validates build entries.
func validateBuild(cfg *BuildConfig) []FieldError {
	var errs []FieldError

	outputs := make(map[string]int)
	for i, entry := range cfg.Entries {
		prefix := fmt.Sprintf("build.entries[%d]", i)

		if entry.Input == "" {
			errs = append(errs, FieldError{
				Field:   prefix + ".input",
				Message: "input is required",
				Code:    sass.CodeEmptyFileName,
			})
		}

		if entry.Output != "" && entry.Output != "-" {
			if prev, dup := outputs[entry.Output]; dup {
				errs = append(errs, FieldError{
					Field:   prefix + ".output",
					Message: fmt.Sprintf("output %q is already written by build.entries[%d]", entry.Output, prev),
				})
			} else {
				outputs[entry.Output] = i
			}
		}
	}

	return errs
}

// validateWatch validates watch configuration.
func validateWatch(cfg *WatchConfig) []FieldError {
	var errs []FieldError

	if cfg.Debounce < 0 {
		errs = append(errs, FieldError{
			Field:   "watch.debounce",
			Message: "debounce must be non-negative",
		})
	}

	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("watch.extensions[%d]", i),
				Message: fmt.Sprintf("extension %q must start with '.'", ext),
			})
		}
	}

	return errs
}

// validateTelemetry validates telemetry configuration.
func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(cfg.Logging.Level)] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.Logging.Level),
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "console": true}
	if !validFormats[strings.ToLower(cfg.Logging.Format)] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("invalid log format %q: must be 'json', 'text', or 'console'", cfg.Logging.Format),
		})
	}

	if cfg.Metrics.Enabled {
		if _, _, err := net.SplitHostPort(cfg.Metrics.ListenAddress); err != nil {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.listen_address",
				Message: fmt.Sprintf("invalid listen address: %v", err),
			})
		}
		if !strings.HasPrefix(cfg.Metrics.Path, "/") {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.path",
				Message: "metrics path must start with '/'",
			})
		}
	}

	if cfg.Tracing.Enabled {
		if cfg.Tracing.Endpoint == "" {
			errs = append(errs, FieldError{
				Field:   "telemetry.tracing.endpoint",
				Message: "endpoint is required when tracing is enabled",
			})
		}
		if cfg.Tracing.SampleRatio < 0 || cfg.Tracing.SampleRatio > 1 {
			errs = append(errs, FieldError{
				Field:   "telemetry.tracing.sample_ratio",
				Message: "sample ratio must be between 0.0 and 1.0",
			})
		}
	}

	return errs
}

func fieldErrorFrom(field string, err error) FieldError {
	fe := FieldError{Field: field, Message: err.Error()}
	var cfgErr *sass.ConfigurationError
	if errors.As(err, &cfgErr) {
		fe.Message = cfgErr.Message
		fe.Code = cfgErr.Code
	}
	return fe
}
