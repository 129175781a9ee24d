// Package actions carries out the keep/delete decisions produced by the
// retention engine, either against the real filesystem or as a dry-run
// simulation, and emits the per-file log lines for both.
package actions
