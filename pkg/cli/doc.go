/*
Package cli provides command-line interface utilities for docguard.

The cli package includes output formatters, exit code mapping and signal
handling used by the docguard command.

Output Formatting:

Listing commands support text, JSON and YAML output:

	formatter := cli.NewFormatter(cli.FormatJSON)
	table := cli.Table{Headers: []string{"ID", "Description"}, Rows: rows}
	if err := formatter.FormatTo(os.Stdout, table); err != nil {
		return err
	}

Exit Codes:

Every error category has its own exit code:

	0   success
	10  configuration (load, validation, compile, bad flag)
	20  scan
	30  rule
	40  fail-on threshold reached
	1   anything else

	if err := cmd.Execute(); err != nil {
		os.Exit(int(cli.ExitCodeFor(err)))
	}

Signal Handling:

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()
*/
package cli
