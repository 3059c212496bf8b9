// Package config loads guestview configuration with Viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
	explicit  bool
}

// ManagerOption configures a Manager.
type ManagerOption func(*managerOptions)

type managerOptions struct {
	file string
	dirs []string
}

// WithConfigFile loads an explicit file instead of searching the config
// paths. A missing explicit file is an error.
func WithConfigFile(path string) ManagerOption {
	return func(o *managerOptions) { o.file = path }
}

// WithConfigDirs replaces the search paths.
func WithConfigDirs(dirs ...string) ManagerOption {
	return func(o *managerOptions) { o.dirs = dirs }
}

// NewManager creates a new configuration manager.
func NewManager(opts ...ManagerOption) (*Manager, error) {
	var o managerOptions
	for _, opt := range opts {
		opt(&o)
	}

	v := viper.New()

	switch {
	case o.file != "":
		v.SetConfigFile(o.file)
	default:
		v.SetConfigName("config")
		v.SetConfigType("toml")
		dirs := o.dirs
		if len(dirs) == 0 {
			configDir, err := GetConfigDir()
			if err != nil {
				return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
			}
			dirs = []string{configDir, "."}
		}
		for _, dir := range dirs {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix("GUESTVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The logging variables are shared with logging.NewFromEnv and do not
	// follow the section_key pattern.
	if err := v.BindEnv("logging.level", "GUESTVIEW_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind GUESTVIEW_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "GUESTVIEW_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind GUESTVIEW_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
		explicit:  o.file != "",
	}, nil
}

// Load loads the configuration from file and environment variables.
// Without a config file the defaults apply.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	if err := m.viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) && !m.explicit {
			return nil
		}
		configFile := m.viper.ConfigFileUsed()
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format and permissions", configFile, err)
	}
	return nil
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		configFile := m.viper.ConfigFileUsed()
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			configFile,
			err,
		)
	}
	return config, nil
}

func normalizeConfig(config *Config) {
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	if config.Logging.Level == "" {
		config.Logging.Level = defaultLogLevel
	}
	if config.Logging.Level == "warning" {
		config.Logging.Level = "warn"
	}

	switch strings.ToLower(config.Logging.Format) {
	case "json":
		config.Logging.Format = "json"
	default:
		config.Logging.Format = defaultLogFormat
	}

	seen := make(map[string]bool, len(config.Controller.PassthroughAttributes))
	names := config.Controller.PassthroughAttributes[:0]
	for _, name := range config.Controller.PassthroughAttributes {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	if names == nil {
		names = []string{}
	}
	config.Controller.PassthroughAttributes = names

	if config.Simulation.BaseURL == "" {
		config.Simulation.BaseURL = defaultBaseURL
	}
	if config.Simulation.DocumentZoom == 0 {
		config.Simulation.DocumentZoom = defaultDocumentZoom
	}
	if config.Simulation.AcceptLang == "" {
		config.Simulation.AcceptLang = defaultAcceptLang
	}
}

// Get returns the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	return m.config
}

// ConfigFileUsed returns the path of the loaded file, empty when running
// on defaults.
func (m *Manager) ConfigFileUsed() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.viper.ConfigFileUsed()
}

func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)

	m.viper.SetDefault("controller.passthrough_attributes", defaults.Controller.PassthroughAttributes)

	m.viper.SetDefault("simulation.base_url", defaults.Simulation.BaseURL)
	m.viper.SetDefault("simulation.document_zoom", defaults.Simulation.DocumentZoom)
	m.viper.SetDefault("simulation.element_width", defaults.Simulation.ElementWidth)
	m.viper.SetDefault("simulation.element_height", defaults.Simulation.ElementHeight)
	m.viper.SetDefault("simulation.script_timeout_ms", defaults.Simulation.ScriptTimeoutMs)
	m.viper.SetDefault("simulation.initial_process_id", defaults.Simulation.InitialProcessID)
	m.viper.SetDefault("simulation.accept_lang", defaults.Simulation.AcceptLang)
}
