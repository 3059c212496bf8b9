// Package scenariofile reads replay scenarios from TOML, YAML or JSON files.
package scenariofile

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/bnema/guestview/internal/domain/entity"
)

// SupportedFormats lists the accepted file extensions, without the dot.
var SupportedFormats = []string{"toml", "yaml", "yml", "json"}

// Load reads and validates one scenario file. The format follows the file
// extension; a scenario without a name is named after the file.
func Load(path string) (*entity.Scenario, error) {
	format, err := formatOf(path)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(format)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read scenario %s: %w", path, err)
	}

	sc, err := decode(v)
	if err != nil {
		return nil, fmt.Errorf("failed to decode scenario %s: %w", path, err)
	}
	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return sc, nil
}

// LoadAll loads every path, stopping at the first error.
func LoadAll(paths []string) ([]*entity.Scenario, error) {
	out := make([]*entity.Scenario, 0, len(paths))
	for _, p := range paths {
		sc, err := Load(p)
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, nil
}

// Parse reads a scenario in the given format from r.
func Parse(r io.Reader, format string) (*entity.Scenario, error) {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	if !supported(format) {
		return nil, fmt.Errorf("unsupported scenario format %q", format)
	}

	v := viper.New()
	v.SetConfigType(format)
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	sc, err := decode(v)
	if err != nil {
		return nil, fmt.Errorf("failed to decode scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// decode unmarshals v and rejects unknown keys so typos in step fields fail
// loudly instead of being ignored.
func decode(v *viper.Viper) (*entity.Scenario, error) {
	var sc entity.Scenario
	if err := v.Unmarshal(&sc, func(c *mapstructure.DecoderConfig) {
		c.ErrorUnused = true
	}); err != nil {
		return nil, err
	}
	return &sc, nil
}

func formatOf(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if !supported(ext) {
		return "", fmt.Errorf("unsupported scenario file %s: want one of %s", path, strings.Join(SupportedFormats, ", "))
	}
	return ext, nil
}

func supported(format string) bool {
	for _, f := range SupportedFormats {
		if f == format {
			return true
		}
	}
	return false
}
