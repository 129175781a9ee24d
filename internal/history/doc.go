// Package history records every deletion plexsweep performs (or simulates)
// in a local SQLite ledger so past runs can be audited with the history
// subcommand.
package history
