package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/sassgate/pkg/cli"
	"mercator-hq/sassgate/pkg/telemetry/health"
	"mercator-hq/sassgate/pkg/watch"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

var watchFlags struct {
	listen string
	format string
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Build, then rebuild whenever a source changes",
	Long: `Build every entry, then watch the include paths, the entry directories
and watch.paths for Sass changes and rebuild.

When metrics are enabled, or --listen is given, an HTTP endpoint serves
Prometheus metrics and the /health, /ready and /version probes. /ready
reports degraded while the last build has failures.

Examples:
  # Watch with sassgate.yaml
  sassgate watch

  # Serve metrics and health probes
  sassgate watch --listen 127.0.0.1:9464`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchFlags.listen, "listen", "", "serve metrics and health probes on this address")
	watchCmd.Flags().StringVar(&watchFlags.format, "format", "text", "report format: text, json")
}

func runWatch(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(watchFlags.format)
	if err != nil {
		return cli.WrapConfigError("format", err)
	}

	cfg, err := loadConfig(cmd, false)
	if err != nil {
		return err
	}
	entries, err := buildEntries(cfg)
	if err != nil {
		return err
	}

	a, err := newApp(cmd, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	runner, err := a.runner(cmd)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}

	watcher, err := watch.New(watch.FromConfig(cfg), a.logger)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}

	ctx := a.context(cmd.Context())
	checker := health.New(a.engine)

	rebuild := func(ctx context.Context) error {
		report, err := runner.Run(ctx, entries)
		if report != nil {
			printReport(cmd, format, entries, report)
		}
		checker.RecordBuild(report, err)
		if err == nil && report != nil {
			err = report.Err()
		}
		return err
	}

	// A failing first build is reported; the sources may be fixed while watching
	if err := rebuild(ctx); err != nil {
		a.logger.WarnContext(ctx, "initial build failed", "error", err)
	}

	listen := watchFlags.listen
	if listen == "" && cfg.Telemetry.Metrics.Enabled {
		listen = cfg.Telemetry.Metrics.ListenAddress
	}
	if listen != "" {
		_, stop, err := a.serveStatus(listen, checker)
		if err != nil {
			watcher.Close()
			return cli.NewCommandError("watch", err)
		}
		defer stop()
	}

	printf(cmd, "Watching %d entries. Press Ctrl+C to stop\n", len(entries))

	err = watcher.Watch(ctx, func(ctx context.Context, changed []string) error {
		a.metrics.RecordRebuild()
		a.logger.DebugContext(ctx, "rebuilding", "changed", changed)
		return rebuild(ctx)
	})
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	return nil
}

// serveStatus serves metrics and health probes on addr until stop is called.
// It returns the address actually bound.
func (a *app) serveStatus(addr string, checker *health.Checker) (bound string, stop func(), err error) {
	mux := http.NewServeMux()
	health.Register(mux, checker, versionInfo(a.engine.Version()))
	if a.cfg.Telemetry.Metrics.Enabled {
		mux.Handle(a.cfg.Telemetry.Metrics.Path, a.metrics.Handler())
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("status server failed", "error", err)
		}
	}()
	bound = ln.Addr().String()
	a.logger.Info("status endpoint listening", "address", bound)

	return bound, func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			a.logger.Warn("status server shutdown failed", "error", err)
		}
	}, nil
}
