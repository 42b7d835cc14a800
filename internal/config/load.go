package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is picked up from the working directory when no
// explicit path is given.
const DefaultConfigFile = "cephlink.yaml"

// LoadFile reads pipeline options from a YAML file, layered over the
// defaults. An empty path falls back to DefaultConfigFile if it exists;
// a missing default file is not an error, the defaults are returned.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err != nil {
			return cfg, nil
		}
		path = DefaultConfigFile
	}

	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Unmarshal over the defaulted struct: absent keys keep their
	// default value, present keys override it.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}
