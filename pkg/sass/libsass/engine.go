// Package libsass implements sass.Engine on top of libsass through the
// go-libsass cgo bindings.
package libsass

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/wellington/go-libsass/libs"

	"mercator-hq/sassgate/pkg/sass"
)

// Engine compiles Sass with the libsass library linked into the binary.
// Each call creates and frees its own libsass context, so an Engine may be
// shared between compilers.
type Engine struct{}

// New returns a libsass engine.
func New() *Engine {
	return &Engine{}
}

// CompileSource implements sass.Engine.
func (e *Engine) CompileSource(ctx context.Context, source string, opts sass.Options) (string, error) {
	dc := libs.SassMakeDataContext(source)
	defer libs.SassDeleteDataContext(dc)

	goopts := libs.SassDataContextGetOptions(dc)
	applyOptions(goopts, opts)
	libs.SassDataContextSetOptions(dc, goopts)

	cc := libs.SassDataContextGetContext(dc)
	compiler := libs.SassMakeDataCompiler(dc)
	defer libs.SassDeleteCompiler(compiler)

	libs.SassCompilerParse(compiler)
	libs.SassCompilerExecute(compiler)

	return collect(cc, opts)
}

// CompileFile implements sass.Engine.
func (e *Engine) CompileFile(ctx context.Context, path string, opts sass.Options) (string, error) {
	fc := libs.SassMakeFileContext(path)
	defer libs.SassDeleteFileContext(fc)

	goopts := libs.SassFileContextGetOptions(fc)
	applyOptions(goopts, opts)
	libs.SassFileContextSetOptions(fc, goopts)

	cc := libs.SassFileContextGetContext(fc)
	compiler := libs.SassMakeFileCompiler(fc)
	defer libs.SassDeleteCompiler(compiler)

	libs.SassCompilerParse(compiler)
	libs.SassCompilerExecute(compiler)

	return collect(cc, opts)
}

// Version implements sass.Engine.
func (e *Engine) Version() string {
	return libs.Version()
}

// applyOptions marshals the snapshot into libsass options. Include paths are
// joined with the platform list separator, which libsass splits on.
func applyOptions(goopts libs.SassOptions, opts sass.Options) {
	libs.SassOptionSetPrecision(goopts, opts.Precision)
	libs.SassOptionSetOutputStyle(goopts, int(opts.Style))
	libs.SassOptionSetSourceComments(goopts, opts.Comments)

	if len(opts.IncludePaths) > 0 {
		libs.SassOptionSetIncludePath(goopts, strings.Join(opts.IncludePaths, string(os.PathListSeparator)))
	}

	libs.SassOptionSetSourceMapEmbed(goopts, opts.MapEmbed)
	libs.SassOptionSetSourceMapContents(goopts, opts.MapContents)
	libs.SassOptionSetOmitSourceMapURL(goopts, opts.OmitMapURL)

	if opts.MapPath != "" {
		libs.SassOptionSetSourceMapFile(goopts, opts.MapPath)
	}
	if opts.MapRoot != "" {
		libs.SassOptionSetSourceMapRoot(goopts, opts.MapRoot)
	}
}

// errorPayload is the JSON document libsass reports on failure.
type errorPayload struct {
	Status    int    `json:"status"`
	File      string `json:"file"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	Message   string `json:"message"`
	Formatted string `json:"formatted"`
}

func collect(cc libs.SassContext, opts sass.Options) (string, error) {
	if status := libs.SassContextGetErrorStatus(cc); status != 0 {
		return "", decodeError(status, libs.SassContextGetErrorJSON(cc))
	}

	css := libs.SassContextGetOutputString(cc)

	if opts.MapPath != "" && !opts.MapEmbed {
		sourceMap := libs.SassContextGetSourceMapString(cc)
		if err := os.WriteFile(opts.MapPath, []byte(sourceMap), 0o644); err != nil {
			return "", fmt.Errorf("failed to write source map %q: %w", opts.MapPath, err)
		}
	}

	return css, nil
}

func decodeError(status int, raw string) *sass.CompilationError {
	var payload errorPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil || payload.Message == "" {
		return &sass.CompilationError{Status: status, Message: strings.TrimSpace(raw)}
	}

	if payload.Status == 0 {
		payload.Status = status
	}
	return &sass.CompilationError{
		Status:    payload.Status,
		Message:   strings.TrimSpace(payload.Message),
		File:      payload.File,
		Line:      payload.Line,
		Column:    payload.Column,
		Formatted: payload.Formatted,
	}
}
