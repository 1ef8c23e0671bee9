package sass

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"
)

// Compiler validates and accumulates options and dispatches compile requests
// to an Engine. Every setter is atomic: either the new value is applied or an
// error is returned and the options are unchanged.
//
// A Compiler is not safe for concurrent mutation. Compilers never share
// options with each other.
type Compiler struct {
	engine   Engine
	resolver *PathResolver
	logger   *slog.Logger
	opts     Options
}

// Option configures a Compiler at construction time.
type Option func(*Compiler) error

// New creates a Compiler with default options and applies opts in order.
// The first failing option aborts construction.
func New(engine Engine, opts ...Option) (*Compiler, error) {
	if engine == nil {
		return nil, errors.New("sass: engine is nil")
	}

	c := &Compiler{
		engine:   engine,
		resolver: NewPathResolver(),
		logger:   slog.New(slog.DiscardHandler),
		opts:     DefaultOptions(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// WithLogger sets the logger used for compile diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) error {
		if logger != nil {
			c.logger = logger
		}
		return nil
	}
}

// WithPathResolver replaces the path resolver.
func WithPathResolver(r *PathResolver) Option {
	return func(c *Compiler) error {
		if r != nil {
			c.resolver = r
		}
		return nil
	}
}

// WithStyle sets the output style.
func WithStyle(s Style) Option {
	return func(c *Compiler) error { return c.SetStyle(s) }
}

// WithPrecision sets the numeric precision.
func WithPrecision(n int) Option {
	return func(c *Compiler) error { return c.SetPrecision(n) }
}

// WithComments enables or disables source comments.
func WithComments(b bool) Option {
	return func(c *Compiler) error { return c.SetComments(b) }
}

// WithIncludePaths replaces the include paths.
func WithIncludePaths(paths ...string) Option {
	return func(c *Compiler) error { return c.SetIncludePaths(paths) }
}

// WithMapPath sets the source map file path.
func WithMapPath(path string) Option {
	return func(c *Compiler) error { return c.SetMapPath(path) }
}

// WithMapRoot sets the source map root directory.
func WithMapRoot(path string) Option {
	return func(c *Compiler) error { return c.SetMapRoot(path) }
}

// WithEmbed enables or disables embedding the source map in the CSS.
func WithEmbed(b bool) Option {
	return func(c *Compiler) error { return c.SetEmbed(b) }
}

// WithOmitMapURL enables or disables omitting the sourceMappingURL comment.
func WithOmitMapURL(b bool) Option {
	return func(c *Compiler) error { return c.SetMapURL(b) }
}

// WithMapContents enables or disables embedding sources in the source map.
func WithMapContents(b bool) Option {
	return func(c *Compiler) error { return c.SetMapContents(b) }
}

// Style returns the output style. Default is StyleNested.
func (c *Compiler) Style() Style { return c.opts.Style }

// SetStyle sets the output style.
func (c *Compiler) SetStyle(s Style) error {
	if err := ValidateStyle(s); err != nil {
		return err
	}
	c.opts.Style = s
	return nil
}

// Precision returns the precision used for decimal numbers.
func (c *Compiler) Precision() int { return c.opts.Precision }

// SetPrecision sets the precision used for decimal numbers.
func (c *Compiler) SetPrecision(n int) error {
	if err := ValidatePrecision(n); err != nil {
		return err
	}
	c.opts.Precision = n
	return nil
}

// Comments reports whether source comments are emitted.
func (c *Compiler) Comments() bool { return c.opts.Comments }

// SetComments sets whether source comments are emitted.
func (c *Compiler) SetComments(b bool) error {
	c.opts.Comments = b
	return nil
}

// IncludePaths returns a copy of the include paths in search order.
func (c *Compiler) IncludePaths() []string {
	return slices.Clone(c.opts.IncludePaths)
}

// AddIncludePath appends a directory searched for imported files. Relative
// paths are resolved against the working directory. Duplicates are kept.
func (c *Compiler) AddIncludePath(path string) error {
	abs, err := c.resolveDirectory(CodeIncludePath, "include_paths", path)
	if err != nil {
		return err
	}
	c.opts.IncludePaths = append(c.opts.IncludePaths, abs)
	return nil
}

// SetIncludePaths replaces the include paths. Every entry is checked before
// anything is replaced, so a failure leaves the previous list intact.
func (c *Compiler) SetIncludePaths(paths []string) error {
	resolved := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := c.resolveDirectory(CodeIncludePath, "include_paths", p)
		if err != nil {
			return err
		}
		resolved = append(resolved, abs)
	}
	c.opts.IncludePaths = resolved
	return nil
}

// MapPath returns the absolute source map file path, or "" if unset.
func (c *Compiler) MapPath() string { return c.opts.MapPath }

// SetMapPath sets the source map file path. The file must be creatable.
// An empty path unsets it.
func (c *Compiler) SetMapPath(path string) error {
	if path == "" {
		c.opts.MapPath = ""
		return nil
	}
	abs, err := c.resolver.Resolve(CodeMapPath, "map_path", path)
	if err != nil {
		return err
	}
	if err := c.resolver.AssertWritable(CodeMapPath, "map_path", abs); err != nil {
		return err
	}
	c.opts.MapPath = abs
	return nil
}

// MapRoot returns the absolute source map root, or "" if unset.
func (c *Compiler) MapRoot() string { return c.opts.MapRoot }

// SetMapRoot sets the source map root. It must be a readable directory.
func (c *Compiler) SetMapRoot(path string) error {
	abs, err := c.resolveDirectory(CodeMapRoot, "map_root", path)
	if err != nil {
		return err
	}
	c.opts.MapRoot = abs
	return nil
}

// Embed reports whether the source map is embedded in the CSS.
func (c *Compiler) Embed() bool { return c.opts.MapEmbed }

// SetEmbed sets whether the source map is embedded in the CSS.
func (c *Compiler) SetEmbed(b bool) error {
	c.opts.MapEmbed = b
	return nil
}

// MapURL reports whether the sourceMappingURL comment is omitted.
func (c *Compiler) MapURL() bool { return c.opts.OmitMapURL }

// SetMapURL sets whether the sourceMappingURL comment is omitted.
func (c *Compiler) SetMapURL(omit bool) error {
	c.opts.OmitMapURL = omit
	return nil
}

// MapContents reports whether sources are embedded in the source map.
func (c *Compiler) MapContents() bool { return c.opts.MapContents }

// SetMapContents sets whether sources are embedded in the source map.
func (c *Compiler) SetMapContents(b bool) error {
	c.opts.MapContents = b
	return nil
}

// Options returns a snapshot of the current options.
func (c *Compiler) Options() Options {
	return c.opts.Clone()
}

// LibraryVersion returns the engine's library version.
func (c *Compiler) LibraryVersion() string {
	return c.engine.Version()
}

// Compile compiles Sass source text to CSS.
func (c *Compiler) Compile(ctx context.Context, source string) (string, error) {
	snapshot := c.Options()
	start := time.Now()

	css, err := c.engine.CompileSource(ctx, source, snapshot)
	c.logResult(ctx, "source", "", snapshot, start, err)
	if err != nil {
		return "", err
	}
	return css, nil
}

// CompileFile compiles a Sass file to CSS. Only local files are supported;
// relative names are resolved against the working directory.
func (c *Compiler) CompileFile(ctx context.Context, fileName string) (string, error) {
	if fileName == "" {
		return "", configError(CodeEmptyFileName, "file", "", "the file name may not be empty")
	}

	abs, err := c.resolver.Resolve(CodeUnreadableFile, "file", fileName)
	if err != nil {
		return "", err
	}
	if err := c.resolver.AssertReadableFile(CodeUnreadableFile, "file", abs); err != nil {
		return "", err
	}

	snapshot := c.Options()
	start := time.Now()

	css, err := c.engine.CompileFile(ctx, abs, snapshot)
	c.logResult(ctx, "file", abs, snapshot, start, err)
	if err != nil {
		return "", err
	}
	return css, nil
}

func (c *Compiler) resolveDirectory(code int, field, path string) (string, error) {
	abs, err := c.resolver.Resolve(code, field, path)
	if err != nil {
		return "", err
	}
	if err := c.resolver.AssertReadableDirectory(code, field, abs); err != nil {
		return "", err
	}
	return abs, nil
}

func (c *Compiler) logResult(ctx context.Context, kind, path string, opts Options, start time.Time, err error) {
	attrs := []any{
		"kind", kind,
		"style", opts.Style.String(),
		"precision", opts.Precision,
		"include_paths", len(opts.IncludePaths),
		"duration_ms", time.Since(start).Milliseconds(),
	}
	if path != "" {
		attrs = append(attrs, "path", path)
	}

	if err != nil {
		c.logger.WarnContext(ctx, "sass compilation failed", append(attrs, "error", fmt.Sprint(err))...)
		return
	}
	c.logger.DebugContext(ctx, "sass compilation finished", attrs...)
}
