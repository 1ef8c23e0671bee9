// Package config provides configuration management for sassgate.
//
// This package handles loading, validating, and managing configuration from
// YAML files with environment variable overrides. It provides a type-safe
// configuration system with validation and sensible defaults.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("sassgate.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("sassgate.yaml", false)
//
// # Example
//
//	compiler:
//	  style: compressed
//	  precision: 8
//	  include_paths:
//	    - scss/vendor
//	  source_map:
//	    path: dist/app.css.map
//	build:
//	  entries:
//	    - input: scss/app.scss
//	      output: dist/app.css
//
// # Environment Variables
//
// Overrides use the SASSGATE_ prefix: SASSGATE_COMPILER_STYLE,
// SASSGATE_COMPILER_PRECISION, SASSGATE_COMPILER_INCLUDE_PATHS (list
// separated like PATH), SASSGATE_COMPILER_COMMENTS, SASSGATE_COMPILER_MAP_PATH,
// SASSGATE_COMPILER_MAP_ROOT, SASSGATE_COMPILER_OMIT_MAP_URL,
// SASSGATE_COMPILER_MAP_EMBED, SASSGATE_COMPILER_MAP_CONTENTS,
// SASSGATE_LOG_LEVEL, SASSGATE_LOG_FORMAT, SASSGATE_METRICS_ENABLED,
// SASSGATE_METRICS_LISTEN_ADDRESS, SASSGATE_TRACING_ENABLED and
// SASSGATE_TRACING_ENDPOINT. Boolean overrides accept only true/false
// tokens (as parsed by strconv.ParseBool).
//
// # Validation
//
// Validate collects every problem into a ValidationError. Field errors that
// correspond to a compiler option carry the same stable code the compiler
// would report.
package config
