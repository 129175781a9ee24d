// Command plexsweep retires media files from Plex libraries according to
// per-library retention policies (maximum age, total size, or file count),
// deleting lowest-rated and oldest content first.
//
// Interactive invocations default to a dry run; pass --delete to remove
// files for real, which is also the default when running from cron.
package main
