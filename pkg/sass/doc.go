// Package sass validates Sass compiler options and dispatches compile
// requests to a native engine.
//
// A Compiler owns an Options snapshot. Setters validate their input and
// resolve paths against the working directory before anything is stored, so
// the snapshot is never partially updated:
//
//	c, err := sass.New(libsass.New(),
//		sass.WithStyle(sass.StyleCompressed),
//		sass.WithIncludePaths("scss/vendor", "scss/partials"),
//	)
//	if err != nil {
//		return err
//	}
//	css, err := c.CompileFile(ctx, "scss/main.scss")
//
// # Errors
//
// Invalid options and unusable paths fail with a *ConfigurationError before
// the engine is called. Invalid Sass input fails with a *CompilationError
// from the engine. Both carry structured fields and match ErrConfiguration
// and ErrCompilation respectively:
//
//	if errors.Is(err, sass.ErrConfiguration) {
//		// fix the inputs
//	}
//
// # Engines
//
// The Engine interface is the only boundary to the native compiler. Package
// libsass provides the libsass-backed engine; package sasstest provides a
// recording stub for tests.
package sass
