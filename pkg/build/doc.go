// Package build compiles the entries of a sassgate configuration.
//
// Each entry gets a compile ID (a UUID) that is attached to every log
// line and span produced while it compiles. The run stops at the first
// configuration error; compilation errors are collected in the Report.
//
//	runner := &build.Runner{Compiler: compiler, Logger: logger, Metrics: collector}
//	report, err := runner.Run(ctx, build.EntriesFromConfig(cfg.Build))
//	if err != nil {
//	    return err
//	}
//	if err := report.Err(); err != nil {
//	    // one or more entries failed
//	}
package build
