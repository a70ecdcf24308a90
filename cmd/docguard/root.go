package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"mercator-hq/docguard/pkg/cli"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "docguard",
	Short: "docguard - API documentation auditor for Go modules",
	Long: `docguard checks that a Go module's API is documented.

It scans Go sources, evaluates documentation rules against every declaration
in scope and reports each finding with a severity computed from the
configuration:
  - Base severity per visibility (exported, internal, unexported)
  - Overrides selected by kind, package, name or signature patterns
  - Annotation policies (Deprecated, generated code, //nolint directives)

Without --config, the first of .docguard.yaml, .docguard.yml, docguard.yaml
or docguard.yml found in the scanned directory is used.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A missing .env is the normal case.
		_ = godotenv.Load()
	},
}

// Execute runs the root command and exits with the code matching the error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "docguard:", err)
		os.Exit(int(cli.ExitCodeFor(err)))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: discovered in the scanned directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")
}
