package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"plexsweep/internal/retention"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const minimalConfig = `
[server]
token = "secret"

[libraries.Movies]
max_size = "500G"
`

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("PLEX_TOKEN", "")
	path := writeConfig(t, minimalConfig)

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("resolved = %q exists = %v", resolved, exists)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 32400 {
		t.Fatalf("server defaults not applied: %+v", cfg.Server)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("logging defaults not applied: %+v", cfg.Logging)
	}
	if !cfg.History.Enabled {
		t.Fatal("history should default to enabled")
	}
	if !filepath.IsAbs(cfg.Paths.StateDir) {
		t.Fatalf("state dir not expanded: %q", cfg.Paths.StateDir)
	}
	if cfg.HistoryPath() != filepath.Join(cfg.Paths.StateDir, "history.db") {
		t.Fatalf("HistoryPath = %q", cfg.HistoryPath())
	}
}

func TestLoadTokenFromEnvironment(t *testing.T) {
	t.Setenv("PLEX_TOKEN", "env-token")
	path := writeConfig(t, `
[server]
host = "plex.lan"

[libraries.Movies]
max_count = 50
`)

	cfg, _, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Token != "env-token" {
		t.Fatalf("token = %q, want env-token", cfg.Server.Token)
	}
}

func TestLoadRejectsMissingToken(t *testing.T) {
	t.Setenv("PLEX_TOKEN", "")
	path := writeConfig(t, `
[libraries.Movies]
max_count = 50
`)

	_, _, _, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "server.token") {
		t.Fatalf("Load error = %v, want token requirement", err)
	}
}

func TestLoadRejectsNoLibraries(t *testing.T) {
	t.Setenv("PLEX_TOKEN", "")
	path := writeConfig(t, `
[server]
token = "secret"
`)

	_, _, _, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "libraries") {
		t.Fatalf("Load error = %v, want libraries requirement", err)
	}
}

func TestLoadRejectsBadLogging(t *testing.T) {
	t.Setenv("PLEX_TOKEN", "")
	path := writeConfig(t, minimalConfig+`
[logging]
level = "verbose"
`)

	_, _, _, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "logging.level") {
		t.Fatalf("Load error = %v, want logging.level rejection", err)
	}
}

func TestLibraryPolicyConversion(t *testing.T) {
	cases := []struct {
		name    string
		library Library
		want    retention.Policy
	}{
		{
			"age",
			Library{MaxAge: "2 days", WatchedOnly: true},
			retention.Policy{MaxAgeSeconds: 172800, WatchedOnly: true},
		},
		{
			"size",
			Library{MaxSize: "1G", ContinueOnError: true},
			retention.Policy{MaxSizeBytes: 1073741824, ContinueOnError: true},
		},
		{
			"count",
			Library{MaxCount: 120},
			retention.Policy{MaxCount: 120},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.library.Policy()
			if err != nil {
				t.Fatalf("Policy returned error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("Policy = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestLibraryPolicyRejectsAmbiguousModes(t *testing.T) {
	cases := []struct {
		name    string
		library Library
	}{
		{"none", Library{}},
		{"two modes", Library{MaxAge: "1 day", MaxCount: 5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.library.Policy(); !errors.Is(err, retention.ErrPolicyMode) {
				t.Fatalf("Policy error = %v, want ErrPolicyMode", err)
			}
		})
	}
}

func TestLibraryPolicyRejectsMalformedLimits(t *testing.T) {
	if _, err := (Library{MaxAge: "3 fortnights"}).Policy(); err == nil {
		t.Fatal("expected error for unknown age unit")
	}
	if _, err := (Library{MaxSize: "1.5G"}).Policy(); err == nil {
		t.Fatal("expected error for fractional size")
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	t.Setenv("PLEX_TOKEN", "sample-token")
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load of sample returned error: %v", err)
	}
	if !exists {
		t.Fatal("sample config not found after CreateSample")
	}
	if len(cfg.Libraries) == 0 {
		t.Fatal("sample config has no libraries")
	}
	for name, library := range cfg.Libraries {
		if _, err := library.Policy(); err != nil {
			t.Fatalf("sample library %q has invalid policy: %v", name, err)
		}
	}
}
