// Package csv decodes delimiter-separated text into header-keyed records.
//
// The decoder is deliberately permissive: every input produces some
// (possibly empty) result. Unterminated quotes are closed implicitly at end
// of input and ragged rows are padded rather than rejected, because the
// source documents are spreadsheet exports that rarely follow RFC 4180 to
// the letter. Rejecting a document would take the whole catalog offline over
// one sloppy row, so the decoder never returns an error.
package csv

import "strings"

// Record is one decoded data row, keyed by cleaned header name. A record
// carries exactly one entry per header column; cells missing from a ragged
// row are present as empty strings, never absent keys.
type Record map[string]string

// Decode scans text into rows of cells using a two-state machine
// (quoted / unquoted) with one character of lookahead.
//
// Inside quotes, commas, line feeds and carriage returns are literal content
// and a doubled quote emits a single literal quote. Outside quotes, a comma
// ends the cell, a line feed ends the row, and carriage returns are
// discarded so CRLF and bare-LF input decode identically. A final row
// without a trailing line terminator is still flushed.
func Decode(text string) [][]string {
	var (
		rows   [][]string
		row    []string
		cell   strings.Builder
		quoted bool
	)

	for i := 0; i < len(text); i++ {
		ch := text[i]

		if quoted {
			if ch == '"' {
				if i+1 < len(text) && text[i+1] == '"' {
					// Escaped quote: emit one literal quote, skip both.
					cell.WriteByte('"')
					i++
					continue
				}
				quoted = false
				continue
			}
			cell.WriteByte(ch)
			continue
		}

		switch ch {
		case '"':
			quoted = true
		case ',':
			row = append(row, cell.String())
			cell.Reset()
		case '\n':
			row = append(row, cell.String())
			cell.Reset()
			rows = append(rows, row)
			row = nil
		case '\r':
			// Dropped; the '\n' of a CRLF pair terminates the row.
		default:
			cell.WriteByte(ch)
		}
	}

	// Flush the trailing row when the last cell has content or the row
	// already holds at least one completed cell.
	if cell.Len() > 0 || len(row) > 0 {
		row = append(row, cell.String())
		rows = append(rows, row)
	}

	return rows
}

// Records projects raw rows onto header-keyed records. The first row is the
// header; its cleaned cells become the keys for every following row. Rows
// whose cells all trim to empty are dropped (guards against trailing blank
// lines), ragged rows map missing trailing cells to "", and cells beyond the
// header width are ignored. Duplicate header names resolve by plain map
// assignment, so the last occurrence wins.
func Records(rows [][]string) ([]string, []Record) {
	if len(rows) == 0 {
		return nil, nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = CleanHeader(h)
	}

	var records []Record
	for _, row := range rows[1:] {
		if isRowEmpty(row) {
			continue
		}

		rec := make(Record, len(headers))
		for i, h := range headers {
			if i < len(row) {
				rec[h] = CleanCell(row[i])
			} else {
				rec[h] = ""
			}
		}
		records = append(records, rec)
	}

	return headers, records
}

// DecodeRecords decodes text and projects it in one step.
func DecodeRecords(text string) ([]string, []Record) {
	return Records(Decode(text))
}

// isRowEmpty reports whether every cell in the row trims to empty.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
