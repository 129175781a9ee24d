// Package sweep orchestrates one cleanup run: it resolves configured
// libraries against the Plex section list, flattens each library's videos
// into per-file records, runs the retention evaluator for the library's
// policy, and reports what was deleted.
//
// Libraries are processed sequentially in sorted name order. A library with
// a missing section or an invalid policy is skipped with a logged error;
// a metadata fetch failure aborts the whole run.
package sweep
