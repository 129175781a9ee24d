package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable. Per-library retention
// limits are deliberately not parsed here; a malformed library surfaces
// when its policy is built so the rest of the run can proceed.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if len(c.Libraries) == 0 {
		return errors.New("at least one [libraries.<name>] section must be configured")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Host == "" {
		return errors.New("server.host must be set")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is outside 1-65535", c.Server.Port)
	}
	if c.Server.Token == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/plexsweep/config.toml"
		}
		return fmt.Errorf("server.token is required. Set PLEX_TOKEN env var or edit %s (create with 'plexsweep config init')", defaultPath)
	}
	if c.Server.TimeoutSeconds <= 0 {
		return errors.New("server.timeout_seconds must be positive")
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
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
