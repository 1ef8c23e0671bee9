package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"mercator-hq/sassgate/pkg/sass"
	"mercator-hq/sassgate/pkg/telemetry/logging"
	"mercator-hq/sassgate/pkg/telemetry/metrics"
)

// Runner compiles build entries with a shared compiler.
type Runner struct {
	// Compiler compiles every entry. Required.
	Compiler *sass.Compiler

	// Logger receives one line per entry. Defaults to a no-op logger.
	Logger *logging.Logger

	// Metrics records build totals and rejected options. May be nil.
	Metrics *metrics.Collector

	// Stdout receives CSS for entries whose output is Stdout.
	// Defaults to os.Stdout.
	Stdout io.Writer
}

// Run compiles entries in order.
//
// A configuration error stops the run, since every following entry would
// be rejected the same way; the returned report holds the entries compiled
// so far and the error is returned. Compilation and write failures are
// recorded in the report and the run continues. Use Report.Err to collect
// them.
func (r *Runner) Run(ctx context.Context, entries []Entry) (*Report, error) {
	if r.Compiler == nil {
		return nil, errors.New("build runner has no compiler")
	}
	logger := r.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	report := &Report{
		ID:      uuid.NewString(),
		Started: time.Now(),
		Results: make([]Result, 0, len(entries)),
	}
	logger.InfoContext(ctx, "build started", "build_id", report.ID, "entries", len(entries))

	finish := func(err error) (*Report, error) {
		report.Duration = time.Since(report.Started)
		r.Metrics.RecordBuild(report.Succeeded(), report.Failed(), report.Duration, err)
		logger.InfoContext(ctx, "build finished",
			"build_id", report.ID,
			"succeeded", report.Succeeded(),
			"failed", report.Failed(),
			"duration_ms", report.Duration.Milliseconds(),
		)
		return report, err
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return finish(err)
		}

		res := r.compile(ctx, logger, entry)
		report.Results = append(report.Results, res)

		if errors.Is(res.Err, sass.ErrConfiguration) {
			return finish(res.Err)
		}
	}

	return finish(nil)
}

func (r *Runner) compile(ctx context.Context, logger *logging.Logger, entry Entry) Result {
	res := Result{
		ID:     uuid.NewString(),
		Input:  entry.Input,
		Output: entry.Output,
	}
	ctx = logging.WithEntry(logging.WithCompileID(ctx, res.ID), entry.Input)

	start := time.Now()
	css, err := r.Compiler.CompileFile(ctx, entry.Input)
	res.Duration = time.Since(start)

	if err != nil {
		res.Err = err
		if errors.Is(err, sass.ErrConfiguration) {
			// Rejected before the engine ran, so the engine decorator never saw it
			r.Metrics.RecordCompile(metrics.KindFile, res.Duration, 0, err)
			logger.ErrorContext(ctx, "entry rejected", "error", err)
		} else {
			logger.WarnContext(ctx, "entry failed", "error", err)
		}
		return res
	}

	if err := r.write(entry.Output, css); err != nil {
		res.Err = err
		logger.ErrorContext(ctx, "failed to write output", "output", entry.Output, "error", err)
		return res
	}

	res.Bytes = len(css)
	logger.InfoContext(ctx, "entry compiled", "output", entry.Output, "bytes", res.Bytes, "duration_ms", res.Duration.Milliseconds())
	return res
}

func (r *Runner) write(output, css string) error {
	if output == Stdout {
		w := r.Stdout
		if w == nil {
			w = os.Stdout
		}
		_, err := io.WriteString(w, css)
		return err
	}

	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(output, []byte(css), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	return nil
}
