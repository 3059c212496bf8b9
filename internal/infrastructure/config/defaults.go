package config

// Default configuration constants
const (
	defaultLogLevel  = "info"
	defaultLogFormat = "console"

	defaultBaseURL          = "about:blank"
	defaultDocumentZoom     = 1.0
	defaultElementWidth     = 800 // px
	defaultElementHeight    = 600 // px
	defaultScriptTimeoutMs  = 2000
	defaultInitialProcessID = 1000
	defaultAcceptLang       = "en-US"

	maxScriptTimeoutMs = 60000
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Controller: ControllerConfig{
			PassthroughAttributes: []string{},
		},
		Simulation: SimulationConfig{
			BaseURL:          defaultBaseURL,
			DocumentZoom:     defaultDocumentZoom,
			ElementWidth:     defaultElementWidth,
			ElementHeight:    defaultElementHeight,
			ScriptTimeoutMs:  defaultScriptTimeoutMs,
			InitialProcessID: defaultInitialProcessID,
			AcceptLang:       defaultAcceptLang,
		},
	}
}
