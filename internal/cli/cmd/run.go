package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/guestview/internal/application/usecase"
	"github.com/bnema/guestview/internal/cli"
	"github.com/bnema/guestview/internal/cli/model"
	"github.com/bnema/guestview/internal/cli/styles"
	"github.com/bnema/guestview/internal/infrastructure/scenariofile"
	"github.com/bnema/guestview/internal/logging"
)

// ErrScenariosFailed is returned when at least one replay did not pass.
var ErrScenariosFailed = errors.New("scenarios failed")

var (
	runJSON     bool
	runTUI      bool
	runWatch    bool
	runParallel int
)

var runCmd = &cobra.Command{
	Use:   "run <scenario>...",
	Short: "Replay scenario files and print their traces",
	Long: `Replay each scenario file against a fresh simulated host element and
native bridge. Scenarios run concurrently; traces print in argument order.

The command fails when any scenario fails an expectation or a step.

Examples:
  guestview run nav.toml dialogs.yaml
  guestview run --json nav.toml | jq '.[0].steps'
  guestview run --watch nav.toml
  guestview run --tui scenarios/*.toml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runJSON, "json", false, "Print traces as JSON")
	runCmd.Flags().BoolVar(&runTUI, "tui", false, "Browse traces interactively")
	runCmd.Flags().BoolVarP(&runWatch, "watch", "w", false, "Replay scenarios again when their files change")
	runCmd.Flags().IntVarP(&runParallel, "parallel", "p", 4, "Maximum number of concurrent replays")
	runCmd.MarkFlagsMutuallyExclusive("tui", "watch")
	runCmd.MarkFlagsMutuallyExclusive("tui", "json")
}

func runRun(cmd *cobra.Command, paths []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	ctx, stop := signal.NotifyContext(app.Ctx(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	traces, err := replayFiles(ctx, app, paths, runParallel)
	if err != nil {
		return err
	}

	if runTUI {
		return browseTraces(ctx, app, paths, traces)
	}

	out := cmd.OutOrStdout()
	if err := printTraces(out, app, traces); err != nil {
		return err
	}
	if runWatch {
		return watchAndReplay(ctx, out, app, paths)
	}
	return checkPassed(traces)
}

// replayFiles loads every file, then replays them on at most parallel
// goroutines. A failing scenario is reported in its trace; only load and
// setup errors are returned.
func replayFiles(ctx context.Context, app *cli.App, paths []string, parallel int) ([]*usecase.Trace, error) {
	scenarios, err := scenariofile.LoadAll(paths)
	if err != nil {
		return nil, err
	}

	replay := app.Replay()
	traces := make([]*usecase.Trace, len(scenarios))

	g, gctx := errgroup.WithContext(ctx)
	if parallel > 0 {
		g.SetLimit(parallel)
	}
	for i, sc := range scenarios {
		g.Go(func() error {
			runID := uuid.NewString()
			out, err := replay.Execute(gctx, usecase.ReplayScenarioInput{Scenario: sc, RunID: runID})
			if out == nil {
				return fmt.Errorf("replay %s: %w", paths[i], err)
			}
			traces[i] = out.Trace
			if err != nil {
				logging.FromContext(gctx).Debug().Err(err).Str("run_id", runID).Msg("scenario failed")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return traces, nil
}

func printTraces(w io.Writer, app *cli.App, traces []*usecase.Trace) error {
	if runJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(traces)
	}

	renderer := styles.NewTraceRenderer(app.Theme)
	for _, trace := range traces {
		fmt.Fprintln(w, renderer.Render(trace))
	}
	fmt.Fprintln(w, renderer.RenderSummary(traces))
	return nil
}

func checkPassed(traces []*usecase.Trace) error {
	failed := 0
	for _, t := range traces {
		if !t.Passed {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrScenariosFailed, failed, len(traces))
	}
	return nil
}

func watchAndReplay(ctx context.Context, w io.Writer, app *cli.App, paths []string) error {
	log := logging.FromContext(ctx)

	watcher, err := scenariofile.NewWatcher(paths, scenariofile.DefaultDebounce)
	if err != nil {
		return err
	}
	if err := app.WatchConfig(); err != nil {
		log.Warn().Err(err).Msg("config watch unavailable")
	}

	renderer := styles.NewTraceRenderer(app.Theme)
	fmt.Fprintln(w, app.Theme.Subtle.Render(fmt.Sprintf("%s watching %d scenario files, ctrl+c to stop", styles.IconClock, len(paths))))

	return watcher.Run(ctx, func(changed []string) {
		traces, err := replayFiles(ctx, app, changed, runParallel)
		if err != nil {
			fmt.Fprintln(w, renderer.RenderError(err))
			return
		}
		if err := printTraces(w, app, traces); err != nil {
			log.Error().Err(err).Msg("failed to print traces")
		}
	})
}

func browseTraces(ctx context.Context, app *cli.App, paths []string, traces []*usecase.Trace) error {
	rerun := func(ctx context.Context) ([]*usecase.Trace, error) {
		return replayFiles(ctx, app, paths, runParallel)
	}

	m := model.NewTraceModel(ctx, app.Theme, traces, rerun)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return fmt.Errorf("run trace browser: %w", err)
	}
	if fm, ok := final.(model.TraceModel); ok {
		return checkPassed(fm.Traces())
	}
	return nil
}
