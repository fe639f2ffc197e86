package dialect

import "strings"

// record is one logical CSV record located in decoded text.
type record struct {
	offset int    // Byte offset of the first character
	text   string // Record text without the line terminator
	count  int    // Delimiters outside quotes
}

func (r record) blank() bool {
	return strings.TrimSpace(r.text) == ""
}

// scanRecords splits text into logical records. Newlines inside quoted fields
// do not end a record unless lines is set, in which case every physical line
// is a record and quote state starts fresh on each one. At most limit records
// are returned; when truncated is set the final unterminated record is
// dropped because it may be incomplete.
func scanRecords(text string, delim rune, limit int, truncated, lines bool) []record {
	var (
		records []record
		inQuote bool
		start   int
		count   int
	)

	emit := func(end int) {
		line := strings.TrimSuffix(text[start:end], "\r")
		records = append(records, record{offset: start, text: line, count: count})
	}

	for i, r := range text {
		if len(records) >= limit {
			return records
		}
		switch {
		case r == '"':
			inQuote = !inQuote
		case r == delim && !inQuote:
			count++
		case r == '\n' && (!inQuote || lines):
			emit(i)
			start = i + 1
			count = 0
			inQuote = false
		}
	}

	if start < len(text) && !truncated && len(records) < limit {
		emit(len(text))
	}
	return records
}

// RecordOffset returns the byte offset in text where logical record n
// starts, or len(text) when the text holds fewer records.
func RecordOffset(text string, n int) int {
	return recordOffset(text, n, false)
}

// LineOffset returns the byte offset in text where physical line n starts,
// or len(text) when the text holds fewer lines.
func LineOffset(text string, n int) int {
	return recordOffset(text, n, true)
}

func recordOffset(text string, n int, lines bool) int {
	if n <= 0 {
		return 0
	}
	inQuote := false
	seen := 0
	for i, r := range text {
		switch {
		case r == '"':
			inQuote = !inQuote
		case r == '\n' && (!inQuote || lines):
			seen++
			if seen == n {
				return i + 1
			}
		}
	}
	return len(text)
}

// fields splits a record on delim outside quotes and strips quoting.
func fields(text string, delim rune) []string {
	var (
		out     []string
		b       strings.Builder
		inQuote bool
	)
	for _, r := range text {
		switch {
		case r == '"':
			inQuote = !inQuote
		case r == delim && !inQuote:
			out = append(out, b.String())
			b.Reset()
		default:
			b.WriteRune(r)
		}
	}
	return append(out, b.String())
}
