// Package cmd provides Cobra CLI commands for guestview.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/guestview/internal/cli"
	"github.com/bnema/guestview/internal/domain/build"
)

var (
	app       *cli.App
	appOpts   cli.Options
	buildInfo build.Info
	rootCmd   = &cobra.Command{
		Use:   "guestview",
		Short: "Replay guest view scenarios against a simulated embedder",
		Long: `guestview drives the guest view controller against an in-memory host
element and native bridge.

A scenario file (TOML, YAML or JSON) lists steps: attribute writes, guest
events, command calls and expectations on the resulting bridge calls, host
events and navigation state. Each run prints a trace of what happened.

Examples:
  guestview run scenarios/*.toml           # Replay and print traces
  guestview run --tui nav.yaml             # Browse traces interactively
  guestview run --watch nav.yaml           # Replay on every save
  guestview schema > scenario.schema.json  # Editor completion for scenario files`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "gen-docs":
				return nil
			}

			var err error
			app, err = cli.NewApp(appOpts)
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			// Set build info from main.go
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&appOpts.ConfigFile, "config", "c", "", "Config file (default $XDG_CONFIG_HOME/guestview/config.toml)")
	rootCmd.PersistentFlags().StringVar(&appOpts.LogLevel, "log-level", "", "Override the configured log level")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}
