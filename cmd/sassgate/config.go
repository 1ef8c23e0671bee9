package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"mercator-hq/sassgate/pkg/cli"
	"mercator-hq/sassgate/pkg/sass"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the configuration file",
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Long: `Load the configuration file with environment overrides and check it.

Besides the field checks done on every load, validate resolves the include
paths and source map locations against the working directory and checks
that every build input is readable, without compiling anything.

Examples:
  sassgate config validate
  sassgate config validate --config ci/sassgate.yaml`,
	Args: cobra.NoArgs,
	RunE: validateConfig,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long:  `Print the configuration after defaults and SASSGATE_* overrides are applied, as YAML.`,
	Args:  cobra.NoArgs,
	RunE:  showConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configShowCmd)
}

func validateConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, true)
	if err != nil {
		return err
	}

	opts, err := cfg.Compiler.CompilerOptions()
	if err != nil {
		return cli.NewCommandError("config validate", err)
	}
	if _, err := sass.New(newEngine(), opts...); err != nil {
		return cli.NewCommandError("config validate", err)
	}

	resolver := sass.NewPathResolver()
	for i, entry := range cfg.Build.Entries {
		field := fmt.Sprintf("build.entries[%d].input", i)
		if err := resolver.AssertReadableFile(sass.CodeUnreadableFile, field, entry.Input); err != nil {
			return cli.NewCommandError("config validate", err)
		}
	}

	printf(cmd, "✓ Configuration valid (%d entries)\n", len(cfg.Build.Entries))
	return nil
}

func showConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, false)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return cli.NewCommandError("config show", err)
	}
	return enc.Close()
}
