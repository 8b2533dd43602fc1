package catalog

import (
	"strings"
	"time"
)

// TwoDigitYearPivot defines how 2-digit years are interpreted. Years that
// would land more than this many years in the future are assumed to be in
// the previous century. Example with pivot=20 in year 2025: "46" → 1946
// (not 2046), "24" → 2024.
var TwoDigitYearPivot = 20

// Layouts split by year format for proper 2-digit year handling. Timestamp
// layouts are tried first so "2024-03-01 18:30" is not truncated to a bare
// date by a shorter layout.
var (
	timestampLayouts = []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"1/2/2006 15:04:05",
		"1/2/2006 15:04",
		"1/2/2006 3:04 PM",
	}
	// 4-digit year layouts - no adjustment needed
	fourDigitYearLayouts = []string{
		"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006", "1.2.2006", "01.02.2006",
		"2006-01-02", "2006/01/02", "2006.01.02",
		"Jan 2, 2006", "2 Jan 2006",
		"20060102",
	}
	// 2-digit year layouts - require pivot year adjustment
	twoDigitYearLayouts = []string{
		"1/2/06", "01/02/06", "1-2-06", "1.2.06", "01.02.06",
	}
)

// ParseWhen parses a cell value as a calendar date or timestamp. It reports
// false for anything unparseable; callers treat that as "no date", never as
// an error.
//
// Zone-less values are interpreted in local time so they compare correctly
// against the local-day filter bounds; RFC 3339 values keep their own zone.
func ParseWhen(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}

	// 4-digit year layouts are unambiguous, try them before pivot handling.
	for _, layout := range fourDigitYearLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}

	currentYear := time.Now().Year()
	pivotYear := currentYear + TwoDigitYearPivot

	for _, layout := range twoDigitYearLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err != nil {
			continue
		}
		// Go's time.Parse maps 2-digit years to 1969-2068. Apply a
		// consistent pivot instead: past the pivot means previous century.
		if t.Year() > pivotYear {
			t = t.AddDate(-100, 0, 0)
		}
		return t, true
	}

	return time.Time{}, false
}

// EndOfDay widens t to the last representable millisecond of its calendar
// day, so a date-only upper bound includes the whole day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}
