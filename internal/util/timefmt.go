package util

import (
	"fmt"
	"time"
)

// TimestampLayout is a fixed-width UTC layout so stored timestamps sort lexically.
const TimestampLayout = "2006-01-02T15:04:05.000000000Z"

// FormatTimestamp renders t in UTC using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses a stored timestamp. RFC3339 is accepted for hand-written rows.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(TimestampLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

// FormatDateTime formats t in local time as 2006-01-02 15:04.
func FormatDateTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

// StartOfPeriod returns the start of a named period relative to now.
// Supported periods: "today", "week", "month". Anything else returns the zero time.
func StartOfPeriod(period string, now time.Time) time.Time {
	y, m, d := now.Date()
	loc := now.Location()

	switch period {
	case "today":
		return time.Date(y, m, d, 0, 0, 0, 0, loc)
	case "week":
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		return time.Date(y, m, d-weekday+1, 0, 0, 0, 0, loc)
	case "month":
		return time.Date(y, m, 1, 0, 0, 0, 0, loc)
	default:
		return time.Time{}
	}
}
