package utils

import (
	"time"

	"github.com/julianstephens/medimate/internal/constants"
)

// Clock returns the current time. Swapped out in tests.
type Clock func() time.Time

// Now returns the current local time truncated to whole seconds, matching the
// precision timestamps are persisted with.
func Now() time.Time {
	return time.Now().Truncate(time.Second)
}

// FormatTimestamp renders t as a persisted timestamp in local time.
func FormatTimestamp(t time.Time) string {
	return t.In(time.Local).Format(constants.TimestampFormat)
}

// ParseTimestamp parses a persisted timestamp as local time.
func ParseTimestamp(s string) (time.Time, error) {
	return time.ParseInLocation(constants.TimestampFormat, s, time.Local)
}

// DateOf returns the local calendar date of t (YYYY-MM-DD).
func DateOf(t time.Time) string {
	return t.In(time.Local).Format(constants.DateFormat)
}

// FormatDisplay renders t for humans, or the fallback when t is nil.
func FormatDisplay(t *time.Time, fallback string) string {
	if t == nil {
		return fallback
	}
	return t.In(time.Local).Format(constants.DisplayFormat)
}
