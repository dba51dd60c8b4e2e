package storage

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeSeparator separates the six components of a saved timestamp:
// yyyy::mm::dd::hh::mm::ss.
const TimeSeparator = "::"

// FormatTimestamp renders t in UTC with second resolution.
func FormatTimestamp(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%04d%s%02d%s%02d%s%02d%s%02d%s%02d",
		t.Year(), TimeSeparator,
		int(t.Month()), TimeSeparator,
		t.Day(), TimeSeparator,
		t.Hour(), TimeSeparator,
		t.Minute(), TimeSeparator,
		t.Second())
}

// ParseTimestamp parses a timestamp written by FormatTimestamp. Components
// may carry surrounding spaces; out-of-range values are rejected rather
// than normalised.
func ParseTimestamp(s string) (time.Time, error) {
	parts := strings.Split(s, TimeSeparator)
	if len(parts) != 6 {
		return time.Time{}, fmt.Errorf("storage: timestamp %q: expected 6 components, got %d", s, len(parts))
	}

	var v [6]int
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return time.Time{}, fmt.Errorf("storage: timestamp %q: invalid component %q", s, part)
		}
		v[i] = n
	}

	t := time.Date(v[0], time.Month(v[1]), v[2], v[3], v[4], v[5], 0, time.UTC)
	if t.Year() != v[0] || int(t.Month()) != v[1] || t.Day() != v[2] ||
		t.Hour() != v[3] || t.Minute() != v[4] || t.Second() != v[5] {
		return time.Time{}, fmt.Errorf("storage: timestamp %q is out of range", s)
	}
	return t, nil
}
