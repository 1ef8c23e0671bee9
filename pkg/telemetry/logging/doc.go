// Package logging provides structured logging for sassgate.
//
// The package wraps log/slog. Records logged with a context pick up the
// compile ID, the build entry and the active trace ID automatically:
//
//	logger, err := logging.New(logging.Config{Level: "debug", Format: "json"})
//	if err != nil {
//	    return err
//	}
//
//	ctx = logging.WithCompileID(ctx, id)
//	logger.InfoContext(ctx, "compiled", "bytes", n)
//
// Slog returns the underlying *slog.Logger for packages that accept one,
// such as sass.WithLogger.
package logging
