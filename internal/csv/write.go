package csv

import (
	stdcsv "encoding/csv"
	"fmt"
	"io"
)

// Write emits records to w as RFC 4180 CSV, header row first. Column order
// follows headers, and keys a record lacks are written as empty cells.
// Encoding is strict even though decoding is permissive: output produced
// here is consumed by spreadsheet tools, not by this package.
func Write(w io.Writer, headers []string, records []Record) error {
	cw := stdcsv.NewWriter(w)

	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("writing header row: %w", err)
	}

	line := make([]string, len(headers))
	for _, rec := range records {
		for i, h := range headers {
			line[i] = rec[h]
		}
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
