package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
// It returns the path of the file used, or "" when none was found.
func Load() (*Config, string, error) {
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	cfg := Default()
	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, "", fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	cliFlags.Apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, configPath, nil
}

// LoadFile loads defaults overlaid with a single file, ignoring flags.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		filepath.Join(".", FileName),
		filepath.Join(ConfigDir(), FileName),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "meshlab")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "meshlab")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "meshlab")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "meshlab")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
