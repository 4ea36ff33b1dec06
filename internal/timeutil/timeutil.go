// Package timeutil resolves "today" for a user. Timestamps are stored
// in UTC and converted to the user's timezone only at query time, so
// deciding which transactions count as today means translating the
// user's local calendar day into a UTC instant range.
package timeutil

import "time"

// DefaultTimezone is used for users who have not picked one.
const DefaultTimezone = "America/Denver"

// Resolve looks up an IANA timezone name. Unknown or empty names fall
// back to fallback, and an unloadable fallback degrades to UTC rather
// than failing the calculation.
func Resolve(name, fallback string) *time.Location {
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	if fallback != "" {
		if loc, err := time.LoadLocation(fallback); err == nil {
			return loc
		}
	}
	return time.UTC
}

// Valid reports whether name is a loadable IANA timezone.
func Valid(name string) bool {
	if name == "" {
		return false
	}
	_, err := time.LoadLocation(name)
	return err == nil
}

// LocalToday returns the user's current calendar day as midnight in
// loc. now is supplied by the caller so results are deterministic.
func LocalToday(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// DayBoundsUTC returns the inclusive UTC instant range covering the
// user's current local calendar day. The offsets come from the
// location at each endpoint, so a DST transition inside the day yields
// a 23- or 25-hour window rather than a wrong one.
func DayBoundsUTC(now time.Time, loc *time.Location) (start, end time.Time) {
	dayStart := LocalToday(now, loc)
	dayEnd := dayStart.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return dayStart.UTC(), dayEnd.UTC()
}

// DayBoundsFor returns the inclusive UTC range for an arbitrary local
// calendar day in loc.
func DayBoundsFor(year int, month time.Month, day int, loc *time.Location) (start, end time.Time) {
	dayStart := time.Date(year, month, day, 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return dayStart.UTC(), dayEnd.UTC()
}
