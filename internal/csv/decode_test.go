package csv

import (
	"reflect"
	"strings"
	"testing"
)

func TestDecode_Rows(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  [][]string
	}{
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "single row no terminator",
			input: "a,b,c",
			want:  [][]string{{"a", "b", "c"}},
		},
		{
			name:  "single row with terminator",
			input: "a,b,c\n",
			want:  [][]string{{"a", "b", "c"}},
		},
		{
			name:  "trailing comma keeps empty cell",
			input: "a,\n",
			want:  [][]string{{"a", ""}},
		},
		{
			name:  "quoted field with embedded comma",
			input: "\"a,b\",\"c\"\n",
			want:  [][]string{{"a,b", "c"}},
		},
		{
			name:  "escaped quote inside quoted field",
			input: "\"c\"\"d\"\n",
			want:  [][]string{{`c"d`}},
		},
		{
			name:  "newline inside quoted field is content",
			input: "\"line1\nline2\",x\n",
			want:  [][]string{{"line1\nline2", "x"}},
		},
		{
			name:  "carriage return inside quotes is content",
			input: "\"a\rb\"\n",
			want:  [][]string{{"a\rb"}},
		},
		{
			name:  "unterminated quote closed at end of input",
			input: "\"abc",
			want:  [][]string{{"abc"}},
		},
		{
			name:  "quote in unquoted mode is not content",
			input: "a\"b\"c\n",
			want:  [][]string{{"abc"}},
		},
		{
			name:  "crlf endings",
			input: "a,b\r\nc,d\r\n",
			want:  [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:  "final data row without terminator",
			input: "C1,C2\nval1,val2",
			want:  [][]string{{"C1", "C2"}, {"val1", "val2"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Decode(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecode_LineEndingsEquivalent(t *testing.T) {
	crlf := Decode("H1,H2\r\nq1,q2\r\n")
	lf := Decode("H1,H2\nq1,q2\n")
	if !reflect.DeepEqual(crlf, lf) {
		t.Errorf("CRLF decode = %v, LF decode = %v, want identical", crlf, lf)
	}
}

func TestDecode_Deterministic(t *testing.T) {
	input := "A,B\n\"1,2\",\"x\"\"y\"\nlast,row"
	first := Decode(input)
	second := Decode(input)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Decode not deterministic: %v vs %v", first, second)
	}
}

func TestRecords_Projection(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantHeaders []string
		wantRecords []Record
	}{
		{
			name:        "basic projection",
			input:       "Name,Date\nalpha,2024-01-01\nbeta,2024-02-01\n",
			wantHeaders: []string{"Name", "Date"},
			wantRecords: []Record{
				{"Name": "alpha", "Date": "2024-01-01"},
				{"Name": "beta", "Date": "2024-02-01"},
			},
		},
		{
			name:        "header-only document yields no records",
			input:       "A,B\n",
			wantHeaders: []string{"A", "B"},
			wantRecords: nil,
		},
		{
			name:        "blank rows dropped",
			input:       "A,B\n,\n  ,\nx,y\n\n",
			wantHeaders: []string{"A", "B"},
			wantRecords: []Record{{"A": "x", "B": "y"}},
		},
		{
			name:        "ragged row padded with empty strings",
			input:       "A,B,C\nonly\n",
			wantHeaders: []string{"A", "B", "C"},
			wantRecords: []Record{{"A": "only", "B": "", "C": ""}},
		},
		{
			name:        "extra cells beyond header ignored",
			input:       "A,B\n1,2,3,4\n",
			wantHeaders: []string{"A", "B"},
			wantRecords: []Record{{"A": "1", "B": "2"}},
		},
		{
			name:        "headers and values trimmed",
			input:       " A , B \n x , y \n",
			wantHeaders: []string{"A", "B"},
			wantRecords: []Record{{"A": "x", "B": "y"}},
		},
		{
			name:        "duplicate header last occurrence wins",
			input:       "A,A\nfirst,second\n",
			wantHeaders: []string{"A", "A"},
			wantRecords: []Record{{"A": "second"}},
		},
		{
			name:        "quoted fields project into cells",
			input:       "Col1,Col2\n\"a,b\",\"c\"\n",
			wantHeaders: []string{"Col1", "Col2"},
			wantRecords: []Record{{"Col1": "a,b", "Col2": "c"}},
		},
		{
			name:        "empty input",
			input:       "",
			wantHeaders: nil,
			wantRecords: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers, records := DecodeRecords(tt.input)
			if !reflect.DeepEqual(headers, tt.wantHeaders) {
				t.Errorf("headers = %v, want %v", headers, tt.wantHeaders)
			}
			if !reflect.DeepEqual(records, tt.wantRecords) {
				t.Errorf("records = %v, want %v", records, tt.wantRecords)
			}
		})
	}
}

func TestRecords_KeyCountMatchesHeader(t *testing.T) {
	input := "A,B,C\n1,2,3\nshort\n1,2,3,4,5\n"
	headers, records := DecodeRecords(input)

	if len(records) != 3 {
		t.Fatalf("record count = %d, want 3", len(records))
	}
	for i, rec := range records {
		if len(rec) != len(headers) {
			t.Errorf("record %d has %d keys, want %d", i, len(rec), len(headers))
		}
	}
}

func TestCleanHeader(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"\uFEFFName", "Name"},
		{"  Name  ", "Name"},
		{`="0001234"`, "0001234"},
		{"Plain", "Plain"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := CleanHeader(tt.input); got != tt.want {
			t.Errorf("CleanHeader(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCleanCell(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{" padded ", "padded"},
		{`="12345"`, "12345"},
		{`=" spaced "`, "spaced"},
		{`="`, `="`},
		{"no wrapper", "no wrapper"},
	}

	for _, tt := range tests {
		if got := CleanCell(tt.input); got != tt.want {
			t.Errorf("CleanCell(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	headers := []string{"Name", "Note"}
	records := []Record{
		{"Name": "alpha", "Note": "has,comma"},
		{"Name": "beta", "Note": `has "quotes"`},
	}

	var buf strings.Builder
	if err := Write(&buf, headers, records); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	gotHeaders, gotRecords := DecodeRecords(buf.String())
	if !reflect.DeepEqual(gotHeaders, headers) {
		t.Errorf("headers after round trip = %v, want %v", gotHeaders, headers)
	}
	if !reflect.DeepEqual(gotRecords, records) {
		t.Errorf("records after round trip = %v, want %v", gotRecords, records)
	}
}

func TestDecode_ArbitraryInputNeverEmpty(t *testing.T) {
	// The decoder is total: any byte soup yields rows, never a panic.
	inputs := []string{
		"\"",
		"\"\"",
		",,,\n\"\n,\r\r\n",
		"\x00\x01,\xff\n",
		strings.Repeat("\"a,", 100),
	}
	for _, in := range inputs {
		_ = Decode(in)
	}
}
