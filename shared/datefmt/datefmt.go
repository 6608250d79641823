// Package datefmt converts between form dates and the backend's timestamp strings.
package datefmt

import (
	"backoffice/shared/constant"
	"strings"
	"time"
)

// Normalize expands a date-only value to midnight UTC. Values that already carry a
// time part are returned unchanged and an empty value stays empty, meaning "omit".
func Normalize(date string) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return ""
	}

	if strings.Contains(date, constant.DateSeparator) {
		return date
	}

	return date + constant.MidnightUTC
}

// NormalizePtr is Normalize for optional JSON fields: empty input yields nil.
func NormalizePtr(date string) *string {
	n := Normalize(date)
	if n == "" {
		return nil
	}

	return &n
}

// DatePart returns the YYYY-MM-DD prefix of a backend timestamp. Calendar
// comparisons run on these strings, never on parsed instants.
func DatePart(ts string) string {
	if idx := strings.Index(ts, constant.DateSeparator); idx >= 0 {
		return ts[:idx]
	}

	return ts
}

// Day formats t's local calendar components as YYYY-MM-DD.
func Day(t time.Time) string {
	return t.Format(constant.DayFormat)
}

// ParseDay reads a YYYY-MM-DD form value in loc.
func ParseDay(value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(constant.DayFormat, value, loc)
}
