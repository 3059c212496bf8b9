package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/guestview/internal/application/usecase"
	"github.com/bnema/guestview/internal/cli/styles"
)

var commandsJSON bool

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the controller commands a scenario call step accepts",
	Args:  cobra.NoArgs,
	RunE:  runCommands,
}

func init() {
	rootCmd.AddCommand(commandsCmd)
	commandsCmd.Flags().BoolVar(&commandsJSON, "json", false, "Print the names as a JSON array")
}

func runCommands(cmd *cobra.Command, _ []string) error {
	names := usecase.CommandNames()
	if commandsJSON {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(names)
	}

	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	fmt.Fprint(cmd.OutOrStdout(), styles.NewTraceRenderer(app.Theme).RenderCommands(names))
	return nil
}
