// Package retention implements the policy engine that decides which library
// files to retire.
//
// A library's physical files are flattened into FileRecord values and sorted
// into a deterministic deletion order (lowest rating first, then oldest
// first). One of three evaluators — by age, by total size, or by file count —
// walks that order and drives an Applier with a keep or delete decision per
// file, honouring the watched-only guard and the continue-on-error setting.
//
// The engine performs no I/O itself; filesystem effects live behind the
// Applier so callers can simulate runs or record outcomes.
package retention
