/*
Package cli provides command-line helpers for the sassgate command.

Output Formatting:

Build reports and version information are printed as text or JSON:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, report); err != nil {
		return err
	}

Exit Codes:

ExitCode maps command errors to the process exit status: 2 for
configuration errors, 1 for compilation failures and anything else.

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
