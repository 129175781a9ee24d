package config

import (
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.Server.Host = strings.TrimSpace(c.Server.Host)
	c.Server.Token = strings.TrimSpace(c.Server.Token)
	if c.Server.Port == 0 {
		c.Server.Port = defaultServerPort
	}
	if c.Server.TimeoutSeconds == 0 {
		c.Server.TimeoutSeconds = defaultServerTimeout
	}

	if token, ok := lookupEnvToken(); ok && c.Server.Token == "" {
		c.Server.Token = token
	}

	stateDir, err := expandPath(firstNonEmpty(c.Paths.StateDir, defaultStateDir))
	if err != nil {
		return err
	}
	c.Paths.StateDir = stateDir

	if strings.TrimSpace(c.History.Path) != "" {
		historyPath, err := expandPath(c.History.Path)
		if err != nil {
			return err
		}
		c.History.Path = historyPath
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(firstNonEmpty(c.Logging.Format, defaultLogFormat)))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(firstNonEmpty(c.Logging.Level, defaultLogLevel)))

	if c.Libraries == nil {
		c.Libraries = map[string]Library{}
	}
	for name, library := range c.Libraries {
		library.MaxAge = strings.TrimSpace(library.MaxAge)
		library.MaxSize = strings.TrimSpace(library.MaxSize)
		c.Libraries[name] = library
	}
	return nil
}

func lookupEnvToken() (string, bool) {
	token := strings.TrimSpace(os.Getenv("PLEX_TOKEN"))
	return token, token != ""
}

func firstNonEmpty(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}
