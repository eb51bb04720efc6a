package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if err := validateSettings(&c.Settings); err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	return nil
}

func validateSettings(s *Settings) error {
	if _, err := ParseGrid(s.Grid); err != nil {
		return fmt.Errorf("grid: %w", err)
	}

	if strings.TrimSpace(s.StateFile) == "" {
		return fmt.Errorf("stateFile: must not be empty")
	}

	if strings.TrimSpace(s.YabaiPath) == "" {
		return fmt.Errorf("yabaiPath: must not be empty")
	}

	if s.Timeout != "" {
		d, err := time.ParseDuration(s.Timeout)
		if err != nil {
			return fmt.Errorf("timeout: %w", err)
		}
		if d < 0 {
			return fmt.Errorf("timeout: must not be negative")
		}
	}

	return nil
}
