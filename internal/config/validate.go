package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRabbitTools(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateRabbitTools() error {
	rt := c.RabbitTools
	if rt.Host == "" {
		return errors.New("rabbit_tools.host must be set")
	}
	if rt.Port < 1 || rt.Port > 65535 {
		return fmt.Errorf("rabbit_tools.port must be between 1 and 65535, got %d", rt.Port)
	}
	switch rt.Scheme {
	case "http", "https":
	default:
		return fmt.Errorf("rabbit_tools.scheme: unsupported value %q", rt.Scheme)
	}
	if rt.User == "" {
		return errors.New("rabbit_tools.user must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error", "critical":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
