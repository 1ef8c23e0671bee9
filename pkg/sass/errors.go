package sass

import (
	"errors"
	"fmt"
	"strings"
)

// Stable error codes carried by ConfigurationError.
const (
	CodeInvalidStyle       = 1435749818
	CodeInvalidPrecision   = 1435750706
	CodeInvalidComments    = 143575012
	CodeInvalidEmbed       = 143575666
	CodeInvalidMapURL      = 143575666
	CodeInvalidMapContents = 143575777
	CodeIncludePath        = 1435748077
	CodeMapRoot            = 1435748099
	CodeMapPath            = 1435748079
	CodeEmptyFileName      = 1435750241
	CodeUnreadableFile     = 1435750470
	CodeNonLocalPath       = 1435750999
	CodeInvalidFlag        = 1435751000
)

// Sentinel errors for matching with errors.Is.
var (
	// ErrConfiguration matches every *ConfigurationError.
	ErrConfiguration = errors.New("sass: configuration error")

	// ErrCompilation matches every *CompilationError.
	ErrCompilation = errors.New("sass: compilation error")
)

// ConfigurationError reports an invalid option or an unusable path. It is
// raised before the engine is called and never leaves the options partially
// updated.
type ConfigurationError struct {
	// Code is a stable numeric identifier for the failure.
	Code int

	// Field is the option the error refers to (e.g. "style", "include_paths").
	Field string

	// Path is the resolved path involved, if any.
	Path string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message.
func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("sass configuration error [%d]: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("sass configuration error [%d] in %s: %s", e.Code, e.Field, e.Message)
}

// Is reports whether target is ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// CompilationError is reported by the engine when the Sass input is invalid
// or an import cannot be resolved.
type CompilationError struct {
	// Status is the engine's non-zero status code.
	Status int

	// Message is the engine's error message.
	Message string

	// File is the file in which the error occurred, if known.
	File string

	// Line and Column locate the error (1-based, 0 if unknown).
	Line   int
	Column int

	// Formatted is the engine's preformatted, multi-line message.
	Formatted string
}

// Error returns the error message with its location.
func (e *CompilationError) Error() string {
	var sb strings.Builder
	sb.WriteString("sass compilation error")
	if e.File != "" {
		sb.WriteString(" in ")
		sb.WriteString(e.File)
		if e.Line > 0 {
			fmt.Fprintf(&sb, ":%d", e.Line)
			if e.Column > 0 {
				fmt.Fprintf(&sb, ":%d", e.Column)
			}
		}
	}
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	return sb.String()
}

// Is reports whether target is ErrCompilation.
func (e *CompilationError) Is(target error) bool {
	return target == ErrCompilation
}

// Kind classifies err as "configuration", "compilation" or "" (neither).
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrCompilation):
		return "compilation"
	default:
		return ""
	}
}

func configError(code int, field, path, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{
		Code:    code,
		Field:   field,
		Path:    path,
		Message: fmt.Sprintf(format, args...),
	}
}
