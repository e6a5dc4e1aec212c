package models

import "time"

var flexibleLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseFlexibleTime parses the loose ISO-ish datetime strings the marketplace
// backend emits. Layouts that carry no zone are interpreted in loc.
func ParseFlexibleTime(raw string, loc *time.Location) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range flexibleLayouts {
		switch layout {
		case time.RFC3339Nano, time.RFC3339:
			if t, err := time.Parse(layout, raw); err == nil {
				return t, true
			}
		default:
			if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// SameCalendarDay reports whether a and b share wall-clock year, month and
// day in loc. This is deliberately not a UTC epoch-day comparison: records
// 24h apart across a local midnight land in different days, records many
// hours apart within one local day land in the same one.
func SameCalendarDay(a, b time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.Local
	}
	a = a.In(loc)
	b = b.In(loc)
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// StartOfDay truncates t to midnight in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
