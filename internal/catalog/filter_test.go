package catalog

import (
	"reflect"
	"testing"
	"time"

	"github.com/JonMunkholm/eventdeck/internal/csv"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	return &t
}

func testRecords() []csv.Record {
	return []csv.Record{
		{"Title": "Spring Gala", "Start": "2024-03-01"},
		{"Title": "Summer Fair", "Start": "2024-06-15"},
		{"Title": "Autumn Market", "Start": "2024-09-30"},
		{"Title": "Undated Meetup", "Start": ""},
		{"Title": "Bad Date Party", "Start": "not a date"},
	}
}

func TestFilter_EmptyCriteriaIsIdentity(t *testing.T) {
	records := testRecords()
	fields := DefaultFields()

	got := Filter(records, fields, Criteria{})
	if !reflect.DeepEqual(got, records) {
		t.Errorf("Filter with empty criteria = %v, want input unchanged", got)
	}
}

func TestFilter_Idempotent(t *testing.T) {
	records := testRecords()
	fields := DefaultFields()

	once := Filter(records, fields, Criteria{})
	twice := Filter(once, fields, Criteria{})
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Filter(Filter(r)) = %v, want %v", twice, once)
	}
}

func TestFilter_TextCondition(t *testing.T) {
	records := testRecords()
	fields := DefaultFields()

	tests := []struct {
		name       string
		search     string
		wantTitles []string
	}{
		{
			name:       "case-insensitive substring",
			search:     "summer",
			wantTitles: []string{"Summer Fair"},
		},
		{
			name:       "partial match across records",
			search:     "a",
			wantTitles: []string{"Spring Gala", "Summer Fair", "Autumn Market", "Undated Meetup", "Bad Date Party"},
		},
		{
			name:       "no match",
			search:     "winter",
			wantTitles: nil,
		},
		{
			name:       "text filter ignores dates entirely",
			search:     "bad date",
			wantTitles: []string{"Bad Date Party"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(records, fields, Criteria{Search: tt.search})
			var titles []string
			for _, rec := range got {
				titles = append(titles, rec["Title"])
			}
			if !reflect.DeepEqual(titles, tt.wantTitles) {
				t.Errorf("titles = %v, want %v", titles, tt.wantTitles)
			}
		})
	}
}

func TestFilter_LowerBound(t *testing.T) {
	records := testRecords()
	fields := DefaultFields()

	got := Filter(records, fields, Criteria{From: date(2024, time.June, 1)})

	want := []string{"Summer Fair", "Autumn Market"}
	var titles []string
	for _, rec := range got {
		titles = append(titles, rec["Title"])
	}
	if !reflect.DeepEqual(titles, want) {
		t.Errorf("titles = %v, want %v", titles, want)
	}
}

func TestFilter_BoundsRejectUnresolvableStart(t *testing.T) {
	records := testRecords()
	fields := DefaultFields()

	got := Filter(records, fields, Criteria{From: date(2000, time.January, 1)})
	for _, rec := range got {
		if rec["Title"] == "Undated Meetup" || rec["Title"] == "Bad Date Party" {
			t.Errorf("record %q without resolvable start passed a date-bounded filter", rec["Title"])
		}
	}
	if len(got) != 3 {
		t.Errorf("len = %d, want 3", len(got))
	}
}

func TestFilter_UpperBoundIncludesWholeDay(t *testing.T) {
	records := []csv.Record{
		{"Title": "Late Show", "Start": "2024-05-10 23:59"},
		{"Title": "Early Riser", "Start": "2024-05-11 00:01"},
	}
	fields := DefaultFields()

	got := Filter(records, fields, Criteria{To: date(2024, time.May, 10)})
	if len(got) != 1 || got[0]["Title"] != "Late Show" {
		t.Errorf("Filter = %v, want only Late Show", got)
	}
}

func TestFilter_BothBounds(t *testing.T) {
	records := testRecords()
	fields := DefaultFields()

	got := Filter(records, fields, Criteria{
		From: date(2024, time.March, 1),
		To:   date(2024, time.June, 15),
	})

	var titles []string
	for _, rec := range got {
		titles = append(titles, rec["Title"])
	}
	want := []string{"Spring Gala", "Summer Fair"}
	if !reflect.DeepEqual(titles, want) {
		t.Errorf("titles = %v, want %v", titles, want)
	}
}

func TestFilter_CombinedTextAndDate(t *testing.T) {
	records := testRecords()
	fields := DefaultFields()

	got := Filter(records, fields, Criteria{
		Search: "a",
		From:   date(2024, time.June, 1),
	})

	var titles []string
	for _, rec := range got {
		titles = append(titles, rec["Title"])
	}
	want := []string{"Summer Fair", "Autumn Market"}
	if !reflect.DeepEqual(titles, want) {
		t.Errorf("titles = %v, want %v", titles, want)
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	records := testRecords()
	snapshot := make([]csv.Record, len(records))
	copy(snapshot, records)

	Filter(records, DefaultFields(), Criteria{Search: "summer", From: date(2024, time.January, 1)})

	if !reflect.DeepEqual(records, snapshot) {
		t.Error("Filter mutated its input")
	}
}

func TestCriteria_IsZero(t *testing.T) {
	if !(Criteria{}).IsZero() {
		t.Error("zero Criteria should report IsZero")
	}
	if (Criteria{Search: "x"}).IsZero() {
		t.Error("Criteria with search should not report IsZero")
	}
	if (Criteria{From: date(2024, time.January, 1)}).IsZero() {
		t.Error("Criteria with bound should not report IsZero")
	}
}
