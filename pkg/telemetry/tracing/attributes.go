package tracing

import (
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"mercator-hq/sassgate/pkg/sass"
)

// Custom attribute keys use the "sass.*" namespace:
//   - sass.style, sass.precision: output settings
//   - sass.source_map.*: source map settings
//   - sass.error.*: compilation or configuration failure details
const (
	// Option attributes
	AttrStyle            = "sass.style"
	AttrPrecision        = "sass.precision"
	AttrComments         = "sass.comments"
	AttrIncludePaths     = "sass.include_paths"
	AttrSourceMapEnabled = "sass.source_map.enabled"
	AttrSourceMapPath    = "sass.source_map.path"
	AttrSourceMapEmbed   = "sass.source_map.embed"

	// Input and output attributes
	AttrKind        = "sass.kind"
	AttrFile        = "sass.file"
	AttrInputBytes  = "sass.input_bytes"
	AttrOutputBytes = "sass.output_bytes"

	// Error attributes
	AttrErrorKind   = "sass.error.kind"
	AttrErrorCode   = "sass.error.code"
	AttrErrorStatus = "sass.error.status"
	AttrErrorFile   = "sass.error.file"
	AttrErrorLine   = "sass.error.line"
	AttrErrorColumn = "sass.error.column"
)

// OptionAttributes returns span attributes describing opts.
func OptionAttributes(opts sass.Options) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String(AttrStyle, opts.Style.String()),
		attribute.Int(AttrPrecision, opts.Precision),
		attribute.Bool(AttrComments, opts.Comments),
		attribute.StringSlice(AttrIncludePaths, opts.IncludePaths),
		attribute.Bool(AttrSourceMapEnabled, opts.SourceMapEnabled()),
	}
	if opts.MapPath != "" {
		attrs = append(attrs, attribute.String(AttrSourceMapPath, opts.MapPath))
	}
	if opts.MapEmbed {
		attrs = append(attrs, attribute.Bool(AttrSourceMapEmbed, true))
	}
	return attrs
}

// SetErrorAttributes records err on span, with location details for a
// compilation error and the stable code for a configuration error.
func SetErrorAttributes(span trace.Span, err error) {
	if err == nil {
		return
	}

	SetError(span, err)
	SetStatus(span, err)

	if kind := sass.Kind(err); kind != "" {
		span.SetAttributes(attribute.String(AttrErrorKind, kind))
	}

	var compErr *sass.CompilationError
	if errors.As(err, &compErr) {
		span.SetAttributes(
			attribute.Int(AttrErrorStatus, compErr.Status),
			attribute.String(AttrErrorFile, compErr.File),
			attribute.Int(AttrErrorLine, compErr.Line),
			attribute.Int(AttrErrorColumn, compErr.Column),
		)
		return
	}

	var cfgErr *sass.ConfigurationError
	if errors.As(err, &cfgErr) {
		span.SetAttributes(attribute.Int(AttrErrorCode, cfgErr.Code))
	}
}
