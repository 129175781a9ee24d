// Package plex is the HTTP client for the Plex Media Server endpoints the
// sweeper needs: the library section list, the videos within a section, and
// per-video metadata details.
//
// Responses are requested as JSON and decoded from the MediaContainer
// envelope the server wraps everything in. Authentication is a static
// X-Plex-Token supplied by configuration; the interactive PIN linking flow
// is deliberately out of scope.
package plex
