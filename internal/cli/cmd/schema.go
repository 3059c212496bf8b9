package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/guestview/internal/infrastructure/config"
	"github.com/bnema/guestview/internal/infrastructure/scenariofile"
)

var schemaCmd = &cobra.Command{
	Use:       "schema [scenario|config]",
	Short:     "Print the JSON schema of scenario or config files",
	Long:      `Print a JSON schema for editor validation and completion. Defaults to the scenario file schema.`,
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"scenario", "config"},
	RunE:      runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, args []string) error {
	kind := "scenario"
	if len(args) > 0 {
		kind = args[0]
	}

	var (
		data []byte
		err  error
	)
	switch kind {
	case "config":
		data, err = config.SchemaJSON()
	default:
		data, err = scenariofile.SchemaJSON()
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
