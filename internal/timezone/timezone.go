package timezone

import (
	"sync/atomic"
	"time"
)

const DefaultTimezone = "UTC"

const (
	DateLayout = "2006-01-02"
	HMLayout   = "15:04"
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

var fallback atomic.Pointer[time.Location]

// SetFallback changes the location used for schedules with no usable
// timezone. Unknown names leave the current fallback in place.
func SetFallback(tz string) {
	if loc, err := time.LoadLocation(tz); err == nil && tz != "" {
		fallback.Store(loc)
	}
}

// Location resolves tz, falling back to SetFallback's location (UTC unless
// set) for empty or unknown names.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	if loc := fallback.Load(); loc != nil {
		return loc
	}
	return time.UTC
}

func Now() time.Time {
	return time.Now().UTC()
}

// ParseDate parses a YYYY-MM-DD calendar date as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, loc)
}

// DaysBetween counts whole calendar days from a to b, ignoring time of day
// and DST shifts. Negative when b is before a.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// SameDate reports whether a and b fall on the same calendar day as seen in
// their own locations.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// AtClock places an "HH:MM" clock time on date's calendar day in date's
// location.
func AtClock(date time.Time, hm string) (time.Time, error) {
	t, err := time.Parse(HMLayout, hm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	), nil
}
