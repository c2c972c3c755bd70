package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the per-project configuration file name.
const DefaultConfigFile = ".exquiz.yaml"

// ErrConfigNotFound is returned when an explicitly named config file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// Load reads configuration from path on top of Default().
// An empty path searches the default locations; if none exists the defaults
// are returned. An explicit path that does not exist is an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = FindConfigFile()
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path) //nolint:gosec // user-provided config path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// FindConfigFile looks for ./.exquiz.yaml, then $XDG_CONFIG_HOME/exquiz/config.yaml.
// It returns "" when neither exists.
func FindConfigFile() string {
	candidates := []string{DefaultConfigFile, filepath.Join(ConfigDir(), "config.yaml")}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}
