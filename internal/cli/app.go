// Package cli provides CLI commands using Bubble Tea TUI.
package cli

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bnema/guestview/internal/application/port"
	"github.com/bnema/guestview/internal/application/usecase"
	"github.com/bnema/guestview/internal/cli/styles"
	"github.com/bnema/guestview/internal/domain/build"
	"github.com/bnema/guestview/internal/infrastructure/config"
	"github.com/bnema/guestview/internal/infrastructure/simulation"
	"github.com/bnema/guestview/internal/logging"
)

// Options are the global command line flags.
type Options struct {
	ConfigFile string
	// LogLevel overrides the configured level when set.
	LogLevel string
	// LogOutput defaults to stderr.
	LogOutput io.Writer
}

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Theme     *styles.Theme
	BuildInfo build.Info

	manager *config.Manager
	opts    Options

	mu     sync.RWMutex
	replay *usecase.ReplayScenarioUseCase

	// Context with logger
	ctx context.Context
}

// NewApp creates a new CLI application with all dependencies.
func NewApp(opts Options) (*App, error) {
	var managerOpts []config.ManagerOption
	if opts.ConfigFile != "" {
		managerOpts = append(managerOpts, config.WithConfigFile(opts.ConfigFile))
	}
	mgr, err := config.NewManager(managerOpts...)
	if err != nil {
		return nil, fmt.Errorf("create config manager: %w", err)
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := mgr.Get()

	logger := newLogger(cfg, opts)
	ctx := logging.WithContext(context.Background(), logger)
	if file := mgr.ConfigFileUsed(); file != "" {
		logger.Debug().Str("file", file).Msg("config loaded")
	}

	return &App{
		Config:  cfg,
		Theme:   styles.NewTheme(),
		manager: mgr,
		opts:    opts,
		replay:  newReplayUseCase(cfg),
		ctx:     ctx,
	}, nil
}

func newLogger(cfg *config.Config, opts Options) zerolog.Logger {
	level := cfg.Logging.Level
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	return logging.New(logging.Config{
		Level:      logging.ParseLevel(level),
		Format:     cfg.Logging.Format,
		TimeFormat: "15:04:05",
		Output:     opts.LogOutput,
	})
}

func newReplayUseCase(cfg *config.Config) *usecase.ReplayScenarioUseCase {
	sim := cfg.Simulation
	return usecase.NewReplayScenarioUseCase(
		simulation.NewFactory(),
		usecase.WithSimulationConfig(port.SimulationConfig{
			ScriptTimeoutMs:  sim.ScriptTimeoutMs,
			InitialProcessID: sim.InitialProcessID,
			AcceptLang:       sim.AcceptLang,
		}),
		usecase.WithElementDefaults(port.ElementConfig{
			BaseURL:      sim.BaseURL,
			Width:        sim.ElementWidth,
			Height:       sim.ElementHeight,
			DocumentZoom: sim.DocumentZoom,
		}),
		usecase.WithPassthroughAttributes(cfg.Controller.PassthroughAttributes),
	)
}

// Replay returns the scenario replay use case for the current config.
func (a *App) Replay() *usecase.ReplayScenarioUseCase {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.replay
}

// WatchConfig rebuilds the replay use case whenever the config file changes.
func (a *App) WatchConfig() error {
	a.manager.OnConfigChange(func(cfg *config.Config) {
		a.mu.Lock()
		a.Config = cfg
		a.replay = newReplayUseCase(cfg)
		a.mu.Unlock()
		logging.FromContext(a.ctx).Info().Msg("config reloaded")
	})
	return a.manager.Watch()
}

// ConfigFileUsed returns the loaded config file, empty on defaults.
func (a *App) ConfigFileUsed() string {
	return a.manager.ConfigFileUsed()
}

// Close releases all resources.
func (a *App) Close() error {
	return nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}
