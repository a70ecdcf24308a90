package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mercator-hq/docguard/pkg/cli"
	"mercator-hq/docguard/pkg/config"
)

var schemaFlags struct {
	output string
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the configuration file",
	Long: `Print the JSON Schema of the docguard configuration file.

Editors use the schema for completion and validation of docguard.yaml.

Examples:
  docguard schema
  docguard schema -o docguard.schema.json`,
	Args: cobra.NoArgs,
	RunE: writeSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().StringVarP(&schemaFlags.output, "output", "o", "", "write the schema to a file instead of stdout")
}

func writeSchema(cmd *cobra.Command, args []string) error {
	data, err := config.SchemaJSON()
	if err != nil {
		return cli.NewCommandError("schema", err)
	}

	if schemaFlags.output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	if err := os.WriteFile(schemaFlags.output, data, 0o644); err != nil {
		return cli.NewCommandError("schema", fmt.Errorf("failed to write %s: %w", schemaFlags.output, err))
	}
	return nil
}
