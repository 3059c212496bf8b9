package config

// Config represents the complete configuration for guestview.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging" toml:"logging" json:"logging"`
	// Controller tunes the guest view controllers created by the registry.
	Controller ControllerConfig `mapstructure:"controller" yaml:"controller" toml:"controller" json:"controller"`
	// Simulation configures the in-memory element and bridge used for scenario replay.
	Simulation SimulationConfig `mapstructure:"simulation" yaml:"simulation" toml:"simulation" json:"simulation"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,enum=disabled"`
	Format string `mapstructure:"format" yaml:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json"`
}

// ControllerConfig holds guest view controller settings.
type ControllerConfig struct {
	// PassthroughAttributes are extra plain string properties recognized on
	// top of the built-in ones.
	PassthroughAttributes []string `mapstructure:"passthrough_attributes" yaml:"passthrough_attributes" toml:"passthrough_attributes" json:"passthrough_attributes"`
}

// SimulationConfig holds defaults for simulated host elements and guests.
// Scenario files may override the element fields.
type SimulationConfig struct {
	// BaseURL is the document base relative navigation targets resolve against.
	BaseURL string `mapstructure:"base_url" yaml:"base_url" toml:"base_url" json:"base_url"`
	// DocumentZoom is the zoom factor of the embedding document.
	DocumentZoom  float64 `mapstructure:"document_zoom" yaml:"document_zoom" toml:"document_zoom" json:"document_zoom"`
	ElementWidth  int     `mapstructure:"element_width" yaml:"element_width" toml:"element_width" json:"element_width"`
	ElementHeight int     `mapstructure:"element_height" yaml:"element_height" toml:"element_height" json:"element_height"`
	// ScriptTimeoutMs bounds every injected guest script.
	ScriptTimeoutMs  int    `mapstructure:"script_timeout_ms" yaml:"script_timeout_ms" toml:"script_timeout_ms" json:"script_timeout_ms"`
	InitialProcessID int    `mapstructure:"initial_process_id" yaml:"initial_process_id" toml:"initial_process_id" json:"initial_process_id"`
	AcceptLang       string `mapstructure:"accept_lang" yaml:"accept_lang" toml:"accept_lang" json:"accept_lang"`
}
