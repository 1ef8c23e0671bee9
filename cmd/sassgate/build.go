package main

import (
	"github.com/spf13/cobra"

	"mercator-hq/sassgate/pkg/cli"
	"mercator-hq/sassgate/pkg/telemetry/tracing"
)

var buildFlags struct {
	format string
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Compile every entry in the config file",
	Long: `Compile every build entry in the config file.

Entries are compiled in order with the configured compiler options. A
configuration error, such as a missing input file, stops the build; a
stylesheet that fails to compile is reported and the build continues.

Examples:
  # Build with sassgate.yaml
  sassgate build

  # Build with another config and print a JSON report
  sassgate build --config ci/sassgate.yaml --format json`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVar(&buildFlags.format, "format", "text", "report format: text, json")
}

func runBuild(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(buildFlags.format)
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
		return cli.NewCommandError("build", err)
	}

	ctx, span := a.tracer.Start(a.context(cmd.Context()), "sassgate.build")
	defer span.End()

	report, err := runner.Run(ctx, entries)
	if report != nil {
		printReport(cmd, format, entries, report)
		if err == nil {
			err = report.Err()
		}
	}
	tracing.SetStatus(span, err)

	if err != nil {
		return cli.NewCommandError("build", err)
	}
	return nil
}
