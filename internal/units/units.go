package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// sizeSuffixes is the ordered suffix alphabet for binary sizes; the index of
// a letter is its 1024 exponent.
const sizeSuffixes = "bKMGTPEZY"

var ageUnits = map[string]int64{
	"":        1,
	"s":       1,
	"sec":     1,
	"secs":    1,
	"second":  1,
	"seconds": 1,
	"m":       60,
	"min":     60,
	"mins":    60,
	"minute":  60,
	"minutes": 60,
	"h":       3600,
	"hour":    3600,
	"hours":   3600,
	"d":       86400,
	"day":     86400,
	"days":    86400,
}

// ParseAge converts an age expression such as "3 days", "1.5h", or "90" into
// seconds. The unit defaults to seconds when omitted and the number may be
// fractional.
func ParseAge(text string) (int64, error) {
	trimmed := strings.TrimSpace(text)
	digits := 0
	for digits < len(trimmed) {
		c := trimmed[digits]
		if (c < '0' || c > '9') && c != '.' {
			break
		}
		digits++
	}
	if digits == 0 {
		return 0, fmt.Errorf("parse age %q: missing number", text)
	}

	number, err := strconv.ParseFloat(trimmed[:digits], 64)
	if err != nil {
		return 0, fmt.Errorf("parse age %q: %w", text, err)
	}

	unit := strings.ToLower(strings.TrimSpace(trimmed[digits:]))
	multiplier, ok := ageUnits[unit]
	if !ok {
		return 0, fmt.Errorf("parse age %q: unknown unit %q", text, unit)
	}
	return int64(math.Round(number * float64(multiplier))), nil
}

// ParseSize converts a size expression such as "512", "10K", or "1G" into
// bytes. The suffix is a single letter from the 1024-based alphabet
// b, K, M, G, T, P, E, Z, Y; no suffix means bytes. Only whole numbers are
// accepted.
func ParseSize(text string) (int64, error) {
	trimmed := strings.TrimSpace(text)
	digits := 0
	for digits < len(trimmed) && trimmed[digits] >= '0' && trimmed[digits] <= '9' {
		digits++
	}
	if digits == 0 {
		return 0, fmt.Errorf("parse size %q: missing number", text)
	}

	number, err := strconv.ParseInt(trimmed[:digits], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse size %q: %w", text, err)
	}

	suffix := strings.TrimSpace(trimmed[digits:])
	if suffix == "" {
		return number, nil
	}
	if len(suffix) != 1 {
		return 0, fmt.Errorf("parse size %q: unknown suffix %q", text, suffix)
	}

	index := strings.IndexByte(strings.ToUpper(sizeSuffixes), strings.ToUpper(suffix)[0])
	if index < 0 {
		return 0, fmt.Errorf("parse size %q: unknown suffix %q", text, suffix)
	}

	value := number
	for i := 0; i < index; i++ {
		if value > math.MaxInt64/1024 {
			return 0, fmt.Errorf("parse size %q: value overflows", text)
		}
		value *= 1024
	}
	return value, nil
}

// FormatBytes renders a byte count with the suffix alphabet used by
// ParseSize. The result is for display only and is not guaranteed to
// round-trip through the parser.
func FormatBytes(bytes int64) string {
	value := float64(bytes)
	index := 0
	for math.Abs(value) >= 1000 && index < len(sizeSuffixes)-1 {
		value /= 1024
		index++
	}
	suffix := string(sizeSuffixes[index])
	if index == 0 {
		// Bytes keep the lowercase marker from the suffix alphabet.
		return fmt.Sprintf("%.0f%s", value, suffix)
	}

	switch {
	case math.Abs(value) >= 10 || value == math.Trunc(value):
		return fmt.Sprintf("%.0f%s", value, suffix)
	case math.Abs(value) >= 1:
		return fmt.Sprintf("%.1f%s", value, suffix)
	default:
		return fmt.Sprintf("%.2f%s", value, suffix)
	}
}
