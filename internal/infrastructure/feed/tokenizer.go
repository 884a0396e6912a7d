// Package feed turns the hand-authored product CSV into typed products and
// fetches it from its source.
package feed

import "strings"

// SplitRows splits raw feed text into logical rows. A row may contain literal
// newlines when they occur inside a double-quoted field. Whitespace-only rows
// are dropped.
//
// Each '"' toggles the quoted state, so an escaped quote ("") toggles twice
// and leaves the state unchanged. An unterminated quote keeps the scanner in
// quoted state until end of input; the remainder becomes a single row.
func SplitRows(text string) []string {
	var (
		rows     []string
		current  strings.Builder
		inQuotes bool
	)

	flush := func() {
		row := current.String()
		current.Reset()
		if strings.TrimSpace(row) != "" {
			rows = append(rows, row)
		}
	}

	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case ch == '"':
			inQuotes = !inQuotes
			current.WriteByte(ch)
		case ch == '\n' && !inQuotes:
			flush()
		case ch == '\r' && !inQuotes && i+1 < len(text) && text[i+1] == '\n':
			flush()
			i++
		default:
			current.WriteByte(ch)
		}
	}
	flush()

	return rows
}
