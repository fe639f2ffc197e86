package table

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/ZaguanLabs/catalogtl/dialect"
)

const snippetLen = 80

// Load decodes raw with the dialect and parses every record from the header
// row on. A data record whose field count differs from the header fails,
// except for a single trailing empty field left by a trailing delimiter.
// The header is taken as is: a blank last header cell is a real column.
func Load(raw []byte, d dialect.Dialect) (*Table, error) {
	text, err := dialect.Decode(raw, d.Encoding)
	if err != nil {
		return nil, err
	}

	offset := d.HeaderOffset(text)
	lineBase := strings.Count(text[:offset], "\n")

	r := csv.NewReader(strings.NewReader(text[offset:]))
	r.Comma = d.Delimiter
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, &ParseError{Line: lineBase + 1, Snippet: "", Cause: errors.New("no header record")}
	}
	if err != nil {
		return nil, syntaxError(err, lineBase, text)
	}

	t := New(header)
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, syntaxError(err, lineBase, text)
		}

		if len(rec) == len(header)+1 && rec[len(header)] == "" {
			rec = rec[:len(header)]
		}
		if len(rec) != len(header) {
			line, _ := r.FieldPos(0)
			return nil, &ParseError{
				Line:     lineBase + line,
				Expected: len(header),
				Got:      len(rec),
				Snippet:  snippet(strings.Join(rec, string(d.Delimiter))),
			}
		}
		if err := t.AppendRow(rec); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func syntaxError(err error, lineBase int, text string) error {
	var pe *csv.ParseError
	if !errors.As(err, &pe) {
		return &ParseError{Line: lineBase + 1, Cause: err}
	}
	line := lineBase + pe.Line
	return &ParseError{
		Line:    line,
		Snippet: snippet(physicalLine(text, line)),
		Cause:   pe.Err,
	}
}

// physicalLine returns the 1-based line n of text.
func physicalLine(text string, n int) string {
	for i := 1; i < n; i++ {
		nl := strings.IndexByte(text, '\n')
		if nl < 0 {
			return ""
		}
		text = text[nl+1:]
	}
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[:nl]
	}
	return strings.TrimSuffix(text, "\r")
}

func snippet(s string) string {
	runes := []rune(s)
	if len(runes) <= snippetLen {
		return s
	}
	return string(runes[:snippetLen]) + "..."
}
