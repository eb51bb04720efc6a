package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/yourusername/gridcycle/internal/state"
	"github.com/yourusername/gridcycle/internal/types"
)

const (
	DefaultConfigDir  = ".config/gridcycle"
	DefaultConfigFile = "config.yaml"

	DefaultGrid      = "2x3"
	DefaultYabaiPath = "yabai"
)

// configCandidates are tried in order when no explicit path is given
var configCandidates = []string{"config.yaml", "config.yml", "config.json", "config.toml"}

// Default returns the built-in configuration used when no file exists
func Default() *Config {
	return &Config{
		Settings: Settings{
			Grid:      DefaultGrid,
			StateFile: state.DefaultPath,
			YabaiPath: DefaultYabaiPath,
		},
	}
}

// LoadConfig loads configuration from the specified path or default location.
// If path is empty, ~/.config/gridcycle/config.{yaml,yml,json,toml} is tried
// and the built-in defaults are returned when none exists.
// An explicit path that does not exist is an error.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Default(), nil
		}
		for _, name := range configCandidates {
			candidate := filepath.Join(home, DefaultConfigDir, name)
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return LoadConfigFromBytes(data, ext)
}

// LoadConfigFromBytes loads configuration from raw bytes.
// format should be "yaml", "json" or "toml". Fields missing from the input
// keep their default values.
func LoadConfigFromBytes(data []byte, format string) (*Config, error) {
	cfg := Default()

	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetConfigPath returns the default config file path
func GetConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, DefaultConfigDir, DefaultConfigFile)
}

// GridConfig parses the configured grid shape
func (c *Config) GridConfig() (types.GridConfig, error) {
	return ParseGrid(c.Settings.Grid)
}

// TimeoutDuration returns the per-call yabai timeout, 0 meaning none
func (c *Config) TimeoutDuration() time.Duration {
	if c.Settings.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Settings.Timeout)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// Marshal encodes the configuration in the given format ("yaml", "json" or "toml")
func (c *Config) Marshal(format string) ([]byte, error) {
	switch format {
	case "yaml", "yml":
		return yaml.Marshal(c)
	case "json":
		return json.MarshalIndent(c, "", "  ")
	case "toml":
		return toml.Marshal(c)
	default:
		return nil, fmt.Errorf("unsupported config format: %s", format)
	}
}
