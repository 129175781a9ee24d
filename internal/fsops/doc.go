// Package fsops provides the thin filesystem layer the sweeper depends on:
// stat snapshots with ages computed against a fixed clock, and removal via
// os.Remove.
package fsops
