package models

import "time"

// BanRecord is the shared shape for learner and teacher bans.
type BanRecord struct {
	ID       int64   `json:"id"`
	UserID   int64   `json:"user_id"`
	BanStart *string `json:"ban_start"`
	BanEnd   *string `json:"ban_end"`
}

// IsActive reports whether the ban covers the reference instant. A missing
// or unparsable start never activates; a missing or unparsable end makes the
// ban open-ended from its start.
func (b BanRecord) IsActive(now time.Time, loc *time.Location) bool {
	if b.BanStart == nil {
		return false
	}
	start, ok := ParseFlexibleTime(*b.BanStart, loc)
	if !ok {
		return false
	}
	if b.BanEnd != nil {
		if end, endOK := ParseFlexibleTime(*b.BanEnd, loc); endOK {
			return !now.Before(start) && !now.After(end)
		}
	}
	return !now.Before(start)
}

// CountActiveBans sums the active-ban predicate over both collections.
func CountActiveBans(learners, teachers []BanRecord, now time.Time, loc *time.Location) int {
	count := 0
	for _, ban := range learners {
		if ban.IsActive(now, loc) {
			count++
		}
	}
	for _, ban := range teachers {
		if ban.IsActive(now, loc) {
			count++
		}
	}
	return count
}
