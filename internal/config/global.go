package config

import (
	"os"
	"path/filepath"
)

const (
	// DefaultConfigDir is the directory name under XDG_CONFIG_HOME.
	DefaultConfigDir = "iqtibas"
	// DefaultConfigFile is the config file name.
	DefaultConfigFile = "config.yml"
)

// DefaultConfigPath returns the default config file location.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/iqtibas/config.yml.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, DefaultConfigDir, DefaultConfigFile)
}

// LoadDefault loads the config file at the default location. A missing
// file is not an error; defaults are returned instead.
func LoadDefault() (*Config, error) {
	path := DefaultConfigPath()
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); err != nil {
		return Default(), nil
	}
	return Load(path)
}
