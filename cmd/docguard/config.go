package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"mercator-hq/docguard/pkg/cli"
	"mercator-hq/docguard/pkg/config"
	"mercator-hq/docguard/pkg/policy/engine"
	"mercator-hq/docguard/pkg/telemetry/logging"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the effective configuration",
	Long: `Inspect the configuration docguard would use.

The effective configuration is the defaults, overlaid with the config file,
overlaid with DOCGUARD_* environment variables.`,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate and compile the configuration",
	Long: `Validate the configuration and compile every pattern in it.

Examples:
  # Validate the discovered configuration
  docguard config validate

  # Validate a specific file
  docguard config validate --config docguard.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: validateConfig,
}

var configShowCmd = &cobra.Command{
	Use:   "show [path]",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.MaximumNArgs(1),
	RunE:  showConfig,
}

func init() {
	configCmd.AddCommand(configValidateCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig resolves the configuration file for the scanned directory and
// loads it with environment overrides. The directory argument, when given,
// replaces project_root.
func loadConfig(args []string) (*config.Config, string, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	path := cfgFile
	if path == "" {
		path = config.Discover(dir)
	}

	cfg, err := config.LoadConfigWithEnvOverrides(path)
	if err != nil {
		source := path
		if source == "" {
			source = "defaults"
		}
		return nil, path, cli.WrapConfigError(source, "failed to load configuration", err)
	}

	if len(args) > 0 {
		cfg.ProjectRoot = args[0]
	}
	return cfg, path, nil
}

// newLogger builds the stderr logger for cfg. --verbose forces debug.
func newLogger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, error) {
	lc := logging.FromConfig(cfg.Telemetry.Logging, cmd.ErrOrStderr())
	if verbose {
		lc.Level = "debug"
	}
	logger, err := logging.New(lc)
	if err != nil {
		return nil, cli.WrapConfigError("telemetry.logging", "invalid logging settings", err)
	}
	return logger, nil
}

func validateConfig(cmd *cobra.Command, args []string) error {
	cfg, path, err := loadConfig(args)
	if err != nil {
		return err
	}
	if _, err := engine.Compile(cfg); err != nil {
		return err
	}

	if path == "" {
		path = "built-in defaults"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid\n", path)
	return nil
}

func showConfig(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(args)
	if err != nil {
		return err
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return cli.NewCommandError("config show", err)
	}
	return cli.NewFormatter(cli.FormatText).FormatTo(cmd.OutOrStdout(), data)
}
