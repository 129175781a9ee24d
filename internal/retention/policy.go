package retention

import "errors"

// ErrPolicyMode reports a policy that does not select exactly one retention
// mode.
var ErrPolicyMode = errors.New("retention: exactly one of max age, max size, max count must be set")

// Mode identifies which retention strategy a policy selects.
type Mode int

const (
	ModeAge Mode = iota + 1
	ModeSize
	ModeCount
)

func (m Mode) String() string {
	switch m {
	case ModeAge:
		return "age"
	case ModeSize:
		return "size"
	case ModeCount:
		return "count"
	default:
		return "unknown"
	}
}

// Policy is the per-library retention configuration. Exactly one of
// MaxAgeSeconds, MaxSizeBytes, and MaxCount must be positive.
type Policy struct {
	MaxAgeSeconds int64
	MaxSizeBytes  int64
	MaxCount      int

	// WatchedOnly restricts deletion to files whose parent video has been
	// viewed at least once.
	WatchedOnly bool
	// ContinueOnError keeps evaluating past a failed delete instead of
	// abandoning the rest of the library.
	ContinueOnError bool
}

// Mode returns the retention mode the policy selects, or ErrPolicyMode when
// zero or more than one mode is set.
func (p Policy) Mode() (Mode, error) {
	var mode Mode
	set := 0
	if p.MaxAgeSeconds > 0 {
		mode = ModeAge
		set++
	}
	if p.MaxSizeBytes > 0 {
		mode = ModeSize
		set++
	}
	if p.MaxCount > 0 {
		mode = ModeCount
		set++
	}
	if set != 1 {
		return 0, ErrPolicyMode
	}
	return mode, nil
}
