package catalog

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/JonMunkholm/eventdeck/internal/csv"
)

func TestFieldMap_TitleFallback(t *testing.T) {
	fields := DefaultFields()

	tests := []struct {
		name string
		rec  csv.Record
		want string
	}{
		{
			name: "primary key wins",
			rec:  csv.Record{"Title": "Gala", "Name": "ignored"},
			want: "Gala",
		},
		{
			name: "empty primary falls through to synonym",
			rec:  csv.Record{"Title": "", "Name": "Fallback"},
			want: "Fallback",
		},
		{
			name: "later synonym",
			rec:  csv.Record{"Event": "From Event"},
			want: "From Event",
		},
		{
			name: "nothing resolvable",
			rec:  csv.Record{"Venue": "Hall"},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fields.Title(tt.rec); got != tt.want {
				t.Errorf("Title(%v) = %q, want %q", tt.rec, got, tt.want)
			}
		})
	}
}

func TestFieldMap_StartFallback(t *testing.T) {
	fields := DefaultFields()

	// An unparseable value in a higher-priority key is skipped, not fatal.
	rec := csv.Record{"Start": "TBD", "Date": "2024-03-01"}
	got, ok := fields.Start(rec)
	if !ok {
		t.Fatal("Start() should resolve via the Date column")
	}
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("Start() = %v, want %v", got, want)
	}

	if _, ok := fields.Start(csv.Record{"Start": "never", "Date": "also not"}); ok {
		t.Error("Start() resolved from unparseable values")
	}
	if _, ok := fields.Start(csv.Record{}); ok {
		t.Error("Start() resolved from an empty record")
	}
}

func TestLoadFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fields.yaml")

	content := "title:\n  - Headline\nstart:\n  - Kickoff\n  - Start\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	fm, err := LoadFields(path)
	if err != nil {
		t.Fatalf("LoadFields() error = %v", err)
	}
	if !reflect.DeepEqual(fm.TitleKeys, []string{"Headline"}) {
		t.Errorf("TitleKeys = %v, want [Headline]", fm.TitleKeys)
	}
	if !reflect.DeepEqual(fm.StartKeys, []string{"Kickoff", "Start"}) {
		t.Errorf("StartKeys = %v, want [Kickoff Start]", fm.StartKeys)
	}
}

func TestLoadFields_PartialOverrideKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fields.yaml")

	if err := os.WriteFile(path, []byte("title:\n  - Headline\n"), 0644); err != nil {
		t.Fatal(err)
	}

	fm, err := LoadFields(path)
	if err != nil {
		t.Fatalf("LoadFields() error = %v", err)
	}
	if !reflect.DeepEqual(fm.StartKeys, DefaultFields().StartKeys) {
		t.Errorf("StartKeys = %v, want defaults", fm.StartKeys)
	}
}

func TestLoadFields_Errors(t *testing.T) {
	if _, err := LoadFields("/nonexistent/fields.yaml"); err == nil {
		t.Error("LoadFields() expected error for missing file")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("title: {broken"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFields(path); err == nil {
		t.Error("LoadFields() expected error for malformed YAML")
	}
}
