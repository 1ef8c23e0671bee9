package sass

import "context"

// Engine is the native Sass compiler. Implementations perform parsing, import
// resolution, code generation and source map construction; this package only
// validates what is handed to them.
//
// Engines report invalid Sass input as a *CompilationError. They receive a
// private copy of the options and must not retain it across calls.
type Engine interface {
	// CompileSource compiles Sass source text to CSS.
	CompileSource(ctx context.Context, source string, opts Options) (string, error)

	// CompileFile compiles the file at the absolute path to CSS.
	CompileFile(ctx context.Context, path string, opts Options) (string, error)

	// Version returns the engine's library version.
	Version() string
}

// LibraryVersion returns the version of the engine's native library. No
// configuration is needed.
func LibraryVersion(engine Engine) string {
	return engine.Version()
}
