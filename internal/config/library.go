package config

import (
	"fmt"

	"plexsweep/internal/retention"
	"plexsweep/internal/units"
)

// Policy converts the library's human-readable limits into a retention
// policy. Malformed limit strings and zero-or-many-mode violations are
// configuration errors scoped to this library alone; the retention engine
// re-validates mutual exclusivity via Policy.Mode.
func (l Library) Policy() (retention.Policy, error) {
	policy := retention.Policy{
		MaxCount:        l.MaxCount,
		WatchedOnly:     l.WatchedOnly,
		ContinueOnError: l.ContinueOnError,
	}

	if l.MaxAge != "" {
		seconds, err := units.ParseAge(l.MaxAge)
		if err != nil {
			return retention.Policy{}, fmt.Errorf("max_age: %w", err)
		}
		policy.MaxAgeSeconds = seconds
	}
	if l.MaxSize != "" {
		bytes, err := units.ParseSize(l.MaxSize)
		if err != nil {
			return retention.Policy{}, fmt.Errorf("max_size: %w", err)
		}
		policy.MaxSizeBytes = bytes
	}

	if _, err := policy.Mode(); err != nil {
		return retention.Policy{}, err
	}
	return policy, nil
}
