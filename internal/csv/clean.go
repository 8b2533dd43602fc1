package csv

import "strings"

// CleanHeader normalizes a header cell. A UTF-8 byte order mark (exported by
// Excel on the first header) is stripped before the usual cell cleaning.
// Case is preserved; key-matching policy belongs to the caller.
func CleanHeader(s string) string {
	s = strings.TrimPrefix(s, "\uFEFF")
	return CleanCell(s)
}

// CleanCell trims surrounding whitespace and unwraps the ="..." formula
// wrapper some spreadsheet exports emit to keep long digit strings textual.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) && len(s) > 3 {
		s = strings.TrimSpace(s[2 : len(s)-1])
	}
	return s
}
