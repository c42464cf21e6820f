package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Display  DisplayConfig  `yaml:"display"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
}

// DisplayConfig holds display preferences
type DisplayConfig struct {
	PaceUnit string `yaml:"pace_unit"`
}

// ServerConfig holds HTTP API settings
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DatabaseConfig holds storage settings
type DatabaseConfig struct {
	Path string `yaml:"path"` // empty means ~/.vdot/data.db
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Display: DisplayConfig{
			PaceUnit: "min/km",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// Load reads the configuration from path. An empty path uses ~/.vdot/config.yaml
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = getConfigPath()
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply defaults for missing values
	defaults := DefaultConfig()
	if cfg.Display.PaceUnit == "" {
		cfg.Display.PaceUnit = defaults.Display.PaceUnit
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = defaults.Server.Addr
	}

	return &cfg, nil
}

// Save writes the configuration to path. An empty path uses ~/.vdot/config.yaml
func Save(path string, cfg *Config) error {
	if path == "" {
		var err error
		path, err = getConfigPath()
		if err != nil {
			return err
		}
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CreateExample creates an example config file if none exists
func CreateExample(path string) error {
	if path == "" {
		var err error
		path, err = getConfigPath()
		if err != nil {
			return err
		}
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return nil // Config exists, don't overwrite
	}

	example := DefaultConfig()
	return Save(path, &example)
}

// Validate checks the config values
func (c *Config) Validate() error {
	if c.Display.PaceUnit != "" && c.Display.PaceUnit != "min/km" && c.Display.PaceUnit != "min/mi" {
		return fmt.Errorf("display.pace_unit must be \"min/km\" or \"min/mi\", got %q", c.Display.PaceUnit)
	}
	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	return nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".vdot"), nil
}
