package main

import (
	"github.com/spf13/cobra"

	"mercator-hq/docguard/pkg/cli"
	"mercator-hq/docguard/pkg/rules"
)

var rulesFlags struct {
	format string
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the available rules",
	Long: `List every registered rule with its status in the effective configuration.

Status is "enabled" or "disabled" for rules listed in the configuration and
"-" for rules that are not listed (and therefore do not run).`,
	Args: cobra.NoArgs,
	RunE: listRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)

	rulesCmd.Flags().StringVar(&rulesFlags.format, "format", "text", "output format: text, json, yaml")
}

func listRules(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(rulesFlags.format, cli.FormatText, cli.FormatJSON, cli.FormatYAML)
	if err != nil {
		return err
	}

	cfg, _, err := loadConfig(nil)
	if err != nil {
		return err
	}

	status := make(map[string]string, len(cfg.Rules))
	for _, r := range cfg.Rules {
		if r.IsEnabled() {
			status[r.ID] = "enabled"
		} else {
			status[r.ID] = "disabled"
		}
	}

	table := cli.Table{Headers: []string{"ID", "Status", "Description"}}
	for _, r := range rules.Default().All() {
		s, ok := status[r.ID()]
		if !ok {
			s = "-"
		}
		table.Rows = append(table.Rows, []string{r.ID(), s, r.Description()})
	}

	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), table)
}
