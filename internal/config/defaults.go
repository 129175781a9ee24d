package config

const (
	defaultServerHost     = "127.0.0.1"
	defaultServerPort     = 32400
	defaultServerTimeout  = 30
	defaultStateDir       = "~/.local/share/plexsweep"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultHistoryEnabled = true
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Server: Server{
			Host:           defaultServerHost,
			Port:           defaultServerPort,
			TimeoutSeconds: defaultServerTimeout,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		History: History{
			Enabled: defaultHistoryEnabled,
		},
		Libraries: map[string]Library{},
	}
}
