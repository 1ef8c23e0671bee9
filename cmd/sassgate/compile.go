package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"mercator-hq/sassgate/pkg/cli"
	"mercator-hq/sassgate/pkg/sass"
	"mercator-hq/sassgate/pkg/telemetry/logging"
)

var compileFlags struct {
	style        string
	precision    int
	comments     bool
	includePaths []string
	mapPath      string
	mapRoot      string
	omitMapURL   bool
	mapEmbed     bool
	mapContents  bool
	output       string
}

var compileCmd = &cobra.Command{
	Use:   "compile [file|-]",
	Short: "Compile a single stylesheet",
	Long: `Compile a single Sass file, or standard input when the file is "-" or
omitted, and write the CSS to standard output or --output.

Flags override the compiler section of the config file. Include paths
given with -I are searched after the configured ones.

Examples:
  # Compile a file with the configured options
  sassgate compile scss/app.scss

  # Compile stdin, compressed, into a file
  sassgate compile --style compressed -o dist/app.css - < scss/app.scss

  # Write a source map next to the CSS
  sassgate compile -I vendor --map-path dist/app.css.map -o dist/app.css scss/app.scss`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	f := compileCmd.Flags()
	f.StringVar(&compileFlags.style, "style", "", "output style: nested, expanded, compact, compressed")
	f.IntVar(&compileFlags.precision, "precision", 0, "digits kept for decimal numbers")
	f.BoolVar(&compileFlags.comments, "comments", false, "emit source line comments")
	f.StringArrayVarP(&compileFlags.includePaths, "include-path", "I", nil, "directory searched for imports (repeatable)")
	f.StringVar(&compileFlags.mapPath, "map-path", "", "source map file to write")
	f.StringVar(&compileFlags.mapRoot, "map-root", "", "directory recorded as the source map root")
	f.BoolVar(&compileFlags.omitMapURL, "omit-map-url", false, "omit the sourceMappingURL comment")
	f.BoolVar(&compileFlags.mapEmbed, "map-embed", false, "embed the source map in the CSS")
	f.BoolVar(&compileFlags.mapContents, "map-contents", false, "embed the Sass sources in the source map")
	f.StringVarP(&compileFlags.output, "output", "o", "", "CSS output file (default: stdout)")
}

func runCompile(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, false)
	if err != nil {
		return err
	}

	a, err := newApp(cmd, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	compiler, err := a.compiler()
	if err != nil {
		return cli.NewCommandError("compile", err)
	}
	if err := applyCompileFlags(cmd, compiler); err != nil {
		return cli.NewCommandError("compile", err)
	}

	input := "-"
	if len(args) == 1 {
		input = args[0]
	}

	ctx := a.context(cmd.Context())
	ctx = logging.WithCompileID(ctx, uuid.NewString())
	ctx = logging.WithEntry(ctx, input)

	var css string
	if input == "-" {
		source, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return cli.NewCommandError("compile", fmt.Errorf("failed to read stdin: %w", err))
		}
		css, err = compiler.Compile(ctx, string(source))
		if err != nil {
			return cli.NewCommandError("compile", err)
		}
	} else {
		css, err = compiler.CompileFile(ctx, input)
		if err != nil {
			return cli.NewCommandError("compile", err)
		}
	}

	if err := writeCSS(cmd, compileFlags.output, css); err != nil {
		return cli.NewCommandError("compile", err)
	}
	return nil
}

// applyCompileFlags applies the flags that were set on the command line.
// Every setter validates its value, so the first bad flag aborts the compile.
func applyCompileFlags(cmd *cobra.Command, c *sass.Compiler) error {
	flags := cmd.Flags()

	if flags.Changed("style") {
		style, err := sass.ParseStyle(compileFlags.style)
		if err != nil {
			return err
		}
		if err := c.SetStyle(style); err != nil {
			return err
		}
	}
	if flags.Changed("precision") {
		if err := c.SetPrecision(compileFlags.precision); err != nil {
			return err
		}
	}
	if flags.Changed("comments") {
		if err := c.SetComments(compileFlags.comments); err != nil {
			return err
		}
	}
	for _, p := range compileFlags.includePaths {
		if err := c.AddIncludePath(p); err != nil {
			return err
		}
	}
	if flags.Changed("map-path") {
		if err := c.SetMapPath(compileFlags.mapPath); err != nil {
			return err
		}
	}
	if flags.Changed("map-root") {
		if err := c.SetMapRoot(compileFlags.mapRoot); err != nil {
			return err
		}
	}
	if flags.Changed("omit-map-url") {
		if err := c.SetMapURL(compileFlags.omitMapURL); err != nil {
			return err
		}
	}
	if flags.Changed("map-embed") {
		if err := c.SetEmbed(compileFlags.mapEmbed); err != nil {
			return err
		}
	}
	if flags.Changed("map-contents") {
		if err := c.SetMapContents(compileFlags.mapContents); err != nil {
			return err
		}
	}
	return nil
}

// writeCSS writes css to output, or to the command output when output is
// empty or "-".
func writeCSS(cmd *cobra.Command, output, css string) error {
	if output == "" || output == "-" {
		_, err := io.WriteString(cmd.OutOrStdout(), css)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(output, []byte(css), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	return nil
}
