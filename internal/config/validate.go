package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateHost(); err != nil {
		return err
	}
	if err := c.validateAutosave(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateHost() error {
	switch c.Host.Environment {
	case "desktop", "web":
		return nil
	default:
		return fmt.Errorf("host.environment must be \"desktop\" or \"web\", got %q", c.Host.Environment)
	}
}

func (c *Config) validateAutosave() error {
	if c.Autosave.DesktopIntervalSeconds < 5 {
		return errors.New("autosave.desktop_interval_seconds must be at least 5")
	}
	if c.Autosave.WebIntervalSeconds < 5 {
		return errors.New("autosave.web_interval_seconds must be at least 5")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
