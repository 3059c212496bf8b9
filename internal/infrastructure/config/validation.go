package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/bnema/guestview/internal/domain/entity"
)

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateLogging(config)...)
	validationErrors = append(validationErrors, validateController(config)...)
	validationErrors = append(validationErrors, validateSimulation(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

func validateLogging(config *Config) []string {
	switch config.Logging.Level {
	case "trace", "debug", "info", "warn", "error", "disabled", "off":
		return nil
	default:
		return []string{fmt.Sprintf("logging.level must be one of trace, debug, info, warn, error, disabled (got %q)", config.Logging.Level)}
	}
}

func validateController(config *Config) []string {
	var validationErrors []string
	for _, name := range config.Controller.PassthroughAttributes {
		if strings.ContainsAny(name, " \t\n=\"'<>/") {
			validationErrors = append(validationErrors,
				fmt.Sprintf("controller.passthrough_attributes: %q is not a valid attribute name", name))
		}
	}
	return validationErrors
}

func validateSimulation(config *Config) []string {
	var validationErrors []string
	sim := config.Simulation

	if _, err := url.Parse(sim.BaseURL); err != nil {
		validationErrors = append(validationErrors, fmt.Sprintf("simulation.base_url is not a valid URL: %v", err))
	}
	if sim.DocumentZoom < entity.ZoomMin || sim.DocumentZoom > entity.ZoomMax {
		validationErrors = append(validationErrors,
			fmt.Sprintf("simulation.document_zoom must be between %.2f and %.2f", entity.ZoomMin, entity.ZoomMax))
	}
	if sim.ElementWidth < 0 {
		validationErrors = append(validationErrors, "simulation.element_width must be non-negative")
	}
	if sim.ElementHeight < 0 {
		validationErrors = append(validationErrors, "simulation.element_height must be non-negative")
	}
	if sim.ScriptTimeoutMs <= 0 || sim.ScriptTimeoutMs > maxScriptTimeoutMs {
		validationErrors = append(validationErrors,
			fmt.Sprintf("simulation.script_timeout_ms must be between 1 and %d", maxScriptTimeoutMs))
	}
	if sim.InitialProcessID <= 0 {
		validationErrors = append(validationErrors, "simulation.initial_process_id must be positive")
	}
	return validationErrors
}
