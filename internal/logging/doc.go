// Package logging builds the slog loggers used across plexsweep: a compact
// console handler for interactive use and a JSON handler for log ingestion.
// Kept-file detail lines log at debug, so the configured level is the
// verbosity knob that decides whether routine keeps appear at all.
package logging
