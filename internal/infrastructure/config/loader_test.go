package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSetDefaults(t *testing.T) {
	mgr := &Manager{viper: viper.New()}
	mgr.setDefaults()

	assert.Equal(t, "info", mgr.viper.GetString("logging.level"))
	assert.Equal(t, 2000, mgr.viper.GetInt("simulation.script_timeout_ms"))
	assert.Equal(t, "about:blank", mgr.viper.GetString("simulation.base_url"))
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	mgr, err := NewManager(WithConfigDirs(t.TempDir()))
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	assert.Equal(t, DefaultConfig(), mgr.Get())
	assert.Empty(t, mgr.ConfigFileUsed())
	assert.NoError(t, mgr.Watch(), "watching without a file is a no-op")
}

func TestLoad_TOMLFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.toml", `
[logging]
level = "DEBUG"
format = "json"

[controller]
passthrough_attributes = ["nodeintegration", " NodeIntegration ", "webpreferences"]

[simulation]
base_url = "https://host.test/"
element_width = 1024
script_timeout_ms = 500
`)

	mgr, err := NewManager(WithConfigDirs(dir))
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, []string{"nodeintegration", "webpreferences"}, cfg.Controller.PassthroughAttributes)
	assert.Equal(t, "https://host.test/", cfg.Simulation.BaseURL)
	assert.Equal(t, 1024, cfg.Simulation.ElementWidth)
	assert.Equal(t, defaultElementHeight, cfg.Simulation.ElementHeight)
	assert.Equal(t, 500, cfg.Simulation.ScriptTimeoutMs)
	assert.Equal(t, filepath.Join(dir, "config.toml"), mgr.ConfigFileUsed())
}

func TestLoad_ExplicitYAMLFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "guestview.yaml", `
simulation:
  document_zoom: 1.5
  initial_process_id: 42
`)
	mgr, err := NewManager(WithConfigFile(path))
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	assert.InDelta(t, 1.5, mgr.Get().Simulation.DocumentZoom, 1e-9)
	assert.Equal(t, 42, mgr.Get().Simulation.InitialProcessID)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	mgr, err := NewManager(WithConfigFile(filepath.Join(t.TempDir(), "absent.toml")))
	require.NoError(t, err)
	assert.Error(t, mgr.Load())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GUESTVIEW_LOG_LEVEL", "trace")
	t.Setenv("GUESTVIEW_SIMULATION_ELEMENT_HEIGHT", "333")

	mgr, err := NewManager(WithConfigDirs(t.TempDir()))
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	assert.Equal(t, "trace", mgr.Get().Logging.Level)
	assert.Equal(t, 333, mgr.Get().Simulation.ElementHeight)
}

func TestLoad_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.toml", `
[logging]
level = "loud"

[simulation]
script_timeout_ms = -1
`)
	mgr, err := NewManager(WithConfigDirs(dir))
	require.NoError(t, err)

	err = mgr.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
	assert.Contains(t, err.Error(), "simulation.script_timeout_ms")
}

func TestNormalizeConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = " Warning "
	cfg.Logging.Format = "xml"
	cfg.Simulation.BaseURL = ""
	cfg.Simulation.DocumentZoom = 0

	normalizeConfig(cfg)

	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, defaultBaseURL, cfg.Simulation.BaseURL)
	assert.Equal(t, defaultDocumentZoom, cfg.Simulation.DocumentZoom)
}
