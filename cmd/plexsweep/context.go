package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"plexsweep/internal/config"
	"plexsweep/internal/logging"
	"plexsweep/internal/services/plex"
)

// appContext lazily loads configuration and shared collaborators for the
// subcommands.
type appContext struct {
	configFlag  *string
	verboseFlag *bool

	cfg    *config.Config
	logger *slog.Logger
}

func newAppContext(configFlag *string, verboseFlag *bool) *appContext {
	return &appContext{configFlag: configFlag, verboseFlag: verboseFlag}
}

func (c *appContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, _, _, err := config.Load(*c.configFlag)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	c.cfg = cfg
	return cfg, nil
}

func (c *appContext) ensureLogger() (*slog.Logger, error) {
	if c.logger != nil {
		return c.logger, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	level := cfg.Logging.Level
	if *c.verboseFlag {
		level = "debug"
	}
	logger, err := logging.New(logging.Options{Level: level, Format: cfg.Logging.Format})
	if err != nil {
		return nil, err
	}
	c.logger = logger
	return logger, nil
}

func (c *appContext) plexClient() (*plex.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	httpClient := &http.Client{Timeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second}
	return plex.NewClient(cfg.Server.Host, cfg.Server.Port, cfg.Server.Token, httpClient), nil
}
