// Package units converts the human-readable quantities found in
// configuration files ("3 days", "10G") into base units, and renders byte
// counts back into short human-readable strings for log output.
package units
