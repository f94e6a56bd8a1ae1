// Package config handles the global refs configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents configuration stored in ~/.config/refs/config.yml.
// Every field is optional; command-line flags and environment variables
// take precedence.
type Config struct {
	BibDir     string `yaml:"bib_dir,omitempty"`
	BibFile    string `yaml:"bib_file,omitempty"`
	NCBIAPIKey string `yaml:"ncbi_api_key,omitempty"`
	Email      string `yaml:"email,omitempty"`
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "refs"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
)

// DefaultPath returns the global config file path. Respects
// XDG_CONFIG_HOME, defaults to ~/.config/refs/config.yml.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// Load reads the configuration file at path. A missing file (or an empty
// path) yields an empty config, not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.BibDir != "" {
		cfg.BibDir = ExpandTilde(cfg.BibDir)
	}

	return &cfg, nil
}

// ExpandTilde expands a leading ~ to the user's home directory. Returns
// the path unchanged if it doesn't start with ~ or the home directory is
// unknown.
func ExpandTilde(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}
