package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/sassgate/pkg/build"
	"mercator-hq/sassgate/pkg/cli"
	"mercator-hq/sassgate/pkg/config"
	"mercator-hq/sassgate/pkg/sass"
	"mercator-hq/sassgate/pkg/sass/libsass"
	"mercator-hq/sassgate/pkg/telemetry/logging"
	"mercator-hq/sassgate/pkg/telemetry/metrics"
	"mercator-hq/sassgate/pkg/telemetry/tracing"
)

// tracerShutdownTimeout bounds the final span flush.
const tracerShutdownTimeout = 5 * time.Second

// newEngine creates the native engine. Tests replace it with a fake.
var newEngine = func() sass.Engine { return libsass.New() }

// app holds the components shared by the compile, build and watch commands.
type app struct {
	cfg     *config.Config
	logger  *logging.Logger
	metrics *metrics.Collector
	tracer  *tracing.Tracer
	engine  sass.Engine
}

// loadConfig loads the configuration file with environment overrides.
// Unless required is set, the file may be missing when --config was not
// given explicitly.
func loadConfig(cmd *cobra.Command, required bool) (*config.Config, error) {
	optional := !required && !cmd.Flags().Changed("config")

	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile, optional)
	if err != nil {
		return nil, cli.WrapConfigError("", err)
	}

	if logLevel != "" {
		cfg.Telemetry.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Telemetry.Logging.Format = logFormat
	}
	return cfg, nil
}

// newApp wires logging, metrics and tracing around the native engine.
func newApp(cmd *cobra.Command, cfg *config.Config) (*app, error) {
	logger, err := logging.New(logging.Config{
		Level:     cfg.Telemetry.Logging.Level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
		Writer:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, cli.WrapConfigError("telemetry.logging", err)
	}

	tracer, err := tracing.New(&cfg.Telemetry.Tracing, Version)
	if err != nil {
		return nil, cli.WrapConfigError("telemetry.tracing", err)
	}

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
	engine := tracing.TraceEngine(metrics.InstrumentEngine(newEngine(), collector), tracer)

	logger.Debug("engine ready",
		"library_version", engine.Version(),
		"metrics", cfg.Telemetry.Metrics.Enabled,
		"tracing", tracer.Enabled(),
	)

	return &app{
		cfg:     cfg,
		logger:  logger,
		metrics: collector,
		tracer:  tracer,
		engine:  engine,
	}, nil
}

// compiler creates a compiler from the configured options followed by extra.
func (a *app) compiler(extra ...sass.Option) (*sass.Compiler, error) {
	opts, err := a.cfg.Compiler.CompilerOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, sass.WithLogger(a.logger.Slog()))
	opts = append(opts, extra...)

	return sass.New(a.engine, opts...)
}

// runner creates a build runner writing stdout entries to the command output.
func (a *app) runner(cmd *cobra.Command) (*build.Runner, error) {
	compiler, err := a.compiler()
	if err != nil {
		return nil, err
	}
	return &build.Runner{
		Compiler: compiler,
		Logger:   a.logger,
		Metrics:  a.metrics,
		Stdout:   cmd.OutOrStdout(),
	}, nil
}

// buildEntries returns the configured entries, failing when there are none.
func buildEntries(cfg *config.Config) ([]build.Entry, error) {
	entries := build.EntriesFromConfig(cfg.Build)
	if len(entries) == 0 {
		return nil, cli.NewConfigError("build.entries", "no entries configured")
	}
	return entries, nil
}

// printReport writes report to stdout, or to stderr when an entry already
// writes CSS to stdout.
func printReport(cmd *cobra.Command, format cli.OutputFormat, entries []build.Entry, report *build.Report) {
	w := cmd.OutOrStdout()
	for _, e := range entries {
		if e.Output == build.Stdout {
			w = cmd.ErrOrStderr()
			break
		}
	}
	if err := cli.NewFormatter(format).FormatTo(w, report); err != nil {
		printf(cmd, "failed to print report: %v\n", err)
	}
}

// context returns the command context joined to a parent trace taken from
// TRACEPARENT, if any.
func (a *app) context(ctx context.Context) context.Context {
	return tracing.ExtractFromEnv(ctx)
}

// close flushes pending spans.
func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), tracerShutdownTimeout)
	defer cancel()

	if err := a.tracer.Shutdown(ctx); err != nil {
		a.logger.Warn("failed to flush traces", "error", err)
	}
}

// printf writes command status lines to stderr, keeping stdout for CSS.
func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.ErrOrStderr(), format, args...)
}
