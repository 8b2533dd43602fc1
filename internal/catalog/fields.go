package catalog

import (
	"fmt"
	"os"
	"time"

	"github.com/JonMunkholm/eventdeck/internal/csv"
	"gopkg.in/yaml.v3"
)

// FieldMap lists, per derived field, the header names tried in priority
// order. Upstream exports are inconsistent about header naming, so the
// fallback chain is kept as an explicit ordered list rather than scattered
// conditionals; deployments with unusual exports override it from a YAML
// file without a rebuild.
type FieldMap struct {
	// TitleKeys are candidate headers for the display title, most
	// authoritative first.
	TitleKeys []string `yaml:"title"`

	// StartKeys are candidate headers for the start instant, most
	// authoritative first.
	StartKeys []string `yaml:"start"`
}

// DefaultFields covers the header spellings seen across the known upstream
// exports.
func DefaultFields() FieldMap {
	return FieldMap{
		TitleKeys: []string{"Title", "Name", "Event", "Summary"},
		StartKeys: []string{"Start", "Start Date", "Start Time", "Date", "When"},
	}
}

// LoadFields reads a YAML fields file. Lists the file leaves empty fall back
// to the defaults, so a file may override just one of the two chains.
func LoadFields(path string) (FieldMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FieldMap{}, fmt.Errorf("reading fields file: %w", err)
	}

	var fm FieldMap
	if err := yaml.Unmarshal(data, &fm); err != nil {
		return FieldMap{}, fmt.Errorf("parsing fields file %s: %w", path, err)
	}

	def := DefaultFields()
	if len(fm.TitleKeys) == 0 {
		fm.TitleKeys = def.TitleKeys
	}
	if len(fm.StartKeys) == 0 {
		fm.StartKeys = def.StartKeys
	}
	return fm, nil
}

// Title resolves the display title for a record: the first non-empty value
// among the candidate keys, or "" when none resolves.
func (f FieldMap) Title(rec csv.Record) string {
	for _, key := range f.TitleKeys {
		if v := rec[key]; v != "" {
			return v
		}
	}
	return ""
}

// Start resolves the start instant for a record: the first candidate value
// that parses as a date or timestamp. Values that fail to parse are skipped,
// not errors.
func (f FieldMap) Start(rec csv.Record) (time.Time, bool) {
	for _, key := range f.StartKeys {
		v := rec[key]
		if v == "" {
			continue
		}
		if t, ok := ParseWhen(v); ok {
			return t, true
		}
	}
	return time.Time{}, false
}
