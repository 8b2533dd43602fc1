// Package catalog holds the decoded event dataset and the filtering logic
// applied to it. This package has no UI dependencies and is consumed by both
// the HTTP server and the CLI.
package catalog

import (
	"strings"
	"time"

	"github.com/JonMunkholm/eventdeck/internal/csv"
)

// Criteria describes an event filter. Every field is optional and an absent
// field is automatically satisfied, so the zero Criteria is the identity
// filter.
type Criteria struct {
	// Search is matched as a case-insensitive substring of the resolved
	// title. Empty means no text condition.
	Search string

	// From excludes records whose start instant is strictly before it.
	From *time.Time

	// To excludes records whose start instant is after the end of its
	// calendar day. A date-only bound therefore includes the whole day.
	To *time.Time
}

// IsZero reports whether no criterion is active.
func (c Criteria) IsZero() bool {
	return c.Search == "" && c.From == nil && c.To == nil
}

// Filter returns the subsequence of records matching all active criteria,
// preserving input order. It is pure: the input slice and its records are
// never mutated, and identical inputs always produce identical output, so
// callers may re-invoke it on every criteria change.
func Filter(records []csv.Record, fields FieldMap, c Criteria) []csv.Record {
	out := make([]csv.Record, 0, len(records))
	for _, rec := range records {
		if matches(rec, fields, c) {
			out = append(out, rec)
		}
	}
	return out
}

// matches applies the text and date conditions; both must hold.
func matches(rec csv.Record, fields FieldMap, c Criteria) bool {
	if c.Search != "" {
		title := fields.Title(rec)
		if !strings.Contains(strings.ToLower(title), strings.ToLower(c.Search)) {
			return false
		}
	}

	if c.From == nil && c.To == nil {
		return true
	}

	// With any bound set, a record without a resolvable start instant is
	// excluded rather than treated as matching.
	start, ok := fields.Start(rec)
	if !ok {
		return false
	}
	if c.From != nil && start.Before(*c.From) {
		return false
	}
	if c.To != nil && start.After(EndOfDay(*c.To)) {
		return false
	}
	return true
}
