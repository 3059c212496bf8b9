package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/guestview/internal/cli/styles"
	"github.com/bnema/guestview/internal/infrastructure/scenariofile"
)

var validateCmd = &cobra.Command{
	Use:   "validate <scenario>...",
	Short: "Check scenario files without replaying them",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, paths []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	out := cmd.OutOrStdout()
	t := app.Theme
	failed := 0
	for _, path := range paths {
		sc, err := scenariofile.Load(path)
		if err != nil {
			failed++
			fmt.Fprintf(out, "%s %s\n", t.ErrorStyle.Render(styles.IconX), t.ErrorStyle.Render(err.Error()))
			continue
		}
		fmt.Fprintf(out, "%s %s %s\n",
			t.SuccessStyle.Render(styles.IconCheck),
			t.Normal.Render(path),
			t.CountBadge(len(sc.Steps), "step"),
		)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scenario files are invalid", failed, len(paths))
	}
	return nil
}
