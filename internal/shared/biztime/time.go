// Package biztime provides time utilities for token lifecycle bookkeeping.
// All storage and transport use UTC; implicit Local timezone is prohibited.
package biztime

import (
	"fmt"
	"time"
)

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ToUTC converts a time (any timezone) to UTC.
func ToUTC(t time.Time) time.Time {
	return t.UTC()
}

// FormatWireTime formats a UTC time for transport using RFC3339 format.
func FormatWireTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

// ParseWireTime parses a timestamp from a transport string (RFC3339 format).
func ParseWireTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp format %q: %w", s, err)
	}
	return t, nil
}
