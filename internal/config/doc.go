// Package config loads, normalizes, and validates plexsweep configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. Per-library retention limits are kept as
// the human-readable strings the file uses ("90 days", "500G") and converted
// to a retention.Policy lazily, so one malformed library skips that library
// instead of failing the whole run.
package config
