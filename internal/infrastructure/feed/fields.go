package feed

import "strings"

// sameDayHeader is the header text that enables the same-day column.
const sameDayHeader = "sameday"

// ParseRow splits one logical row into trimmed fields. Commas inside quotes do
// not split, a doubled quote inside a quoted field becomes a literal quote, and
// the quotes that open and close a field are dropped.
func ParseRow(row string) []string {
	var (
		fields   []string
		current  strings.Builder
		inQuotes bool
	)

	for i := 0; i < len(row); i++ {
		ch := row[i]
		switch {
		case ch == '"' && inQuotes && i+1 < len(row) && row[i+1] == '"':
			current.WriteByte('"')
			i++
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))

	return fields
}

// SameDayColumn returns the zero-based index of the "sameday" header column,
// or -1 when the header has none.
func SameDayColumn(header []string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), sameDayHeader) {
			return i
		}
	}
	return -1
}
