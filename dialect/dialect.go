// Package dialect recovers the encoding, delimiter and header row of a
// delimited text export whose format is not known in advance.
package dialect

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// MaxRecords is the number of records inspected during detection.
	MaxRecords = 100

	// MaxWindow is the number of bytes inspected during detection.
	MaxWindow = 64 << 10

	// MinConsistentRecords is the lowest score the exhaustive sweep accepts.
	MinConsistentRecords = 2

	// minHintScore is the number of known column names that marks a
	// record as the header over an earlier record of the same shape.
	minHintScore = 2
)

// Delimiters lists candidate delimiters in priority order.
var Delimiters = []rune{',', ';', '\t', '|'}

// headerHints are column names that commonly appear in catalog exports.
var headerHints = map[string]bool{
	"name":              true,
	"description":       true,
	"short description": true,
	"regular price":     true,
	"sku":               true,
	"categories":        true,
	"images":            true,
}

// Dialect describes how to read a delimited file.
type Dialect struct {
	Encoding  string // Canonical encoding name, e.g. "utf-8-sig"
	Delimiter rune
	HeaderRow int // Logical record index of the header

	// PhysicalLines is set when HeaderRow counts physical lines. Detection
	// falls back to this when an unbalanced quote in a preamble line hides
	// every record boundary after it.
	PhysicalLines bool
}

// HeaderOffset returns the byte offset in decoded text where the header
// record starts.
func (d Dialect) HeaderOffset(text string) int {
	if d.PhysicalLines {
		return LineOffset(text, d.HeaderRow)
	}
	return RecordOffset(text, d.HeaderRow)
}

func (d Dialect) String() string {
	return fmt.Sprintf("encoding=%s delimiter=%s header_row=%d", d.Encoding, DelimiterName(d.Delimiter), d.HeaderRow)
}

// Options overrides detection for either axis.
type Options struct {
	Encoding  string // Empty means detect
	Delimiter rune   // Zero means detect
}

// Sniff detects the dialect of raw. Overridden axes are trusted as-is.
func Sniff(raw []byte, opts Options) (Dialect, error) {
	encodings, err := candidateEncodings(raw, opts.Encoding)
	if err != nil {
		return Dialect{}, err
	}
	delims := Delimiters
	if opts.Delimiter != 0 {
		if err := ValidateDelimiter(opts.Delimiter); err != nil {
			return Dialect{}, err
		}
		delims = []rune{opts.Delimiter}
	}

	window := raw
	truncated := false
	if len(window) > MaxWindow {
		window = window[:MaxWindow]
		truncated = true
	}

	texts := make(map[string]string, len(encodings))
	for _, enc := range encodings {
		text, err := Decode(window, enc)
		if err != nil {
			return Dialect{}, err
		}
		texts[enc] = text
	}

	// Phase 1: header search per encoding, first encoding with a hit wins.
	// Unbalanced quotes may come from a free-text preamble line, so physical
	// lines are tried as well and win when they explain more records.
	for _, enc := range encodings {
		text := texts[enc]
		d, score, ok := searchHeader(text, enc, delims, truncated, false)
		if unbalancedQuotes(text) {
			if ld, lscore, lok := searchHeader(text, enc, delims, truncated, true); lok && (!ok || lscore > score) {
				d, ok = ld, true
			}
		}
		if ok {
			return d, nil
		}
	}

	// Phase 2: exhaustive sweep over every combination.
	for _, lines := range []bool{false, true} {
		best, bestScore := Dialect{}, -1
		for _, enc := range encodings {
			for _, delim := range delims {
				records := scanRecords(texts[enc], delim, MaxRecords, truncated, lines)
				header, score := modalScore(records)
				if score > bestScore {
					best = Dialect{Encoding: enc, Delimiter: delim, HeaderRow: header, PhysicalLines: lines}
					bestScore = score
				}
			}
		}
		if bestScore >= MinConsistentRecords {
			return best, nil
		}
	}

	if opts.Delimiter != 0 {
		return Dialect{Encoding: encodings[0], Delimiter: opts.Delimiter}, nil
	}
	return Dialect{}, &FormatDetectionError{
		Message: fmt.Sprintf("no consistent delimiter among %s in encodings %s",
			delimiterList(delims), strings.Join(encodings, ", ")),
	}
}

// candidateEncodings returns the encodings to try in priority order.
func candidateEncodings(raw []byte, override string) ([]string, error) {
	if override != "" {
		enc, err := ResolveEncoding(override)
		if err != nil {
			return nil, err
		}
		return []string{enc}, nil
	}

	var encs []string
	if HasBOM(raw) {
		encs = append(encs, UTF8BOM)
	} else if utf8.Valid(raw) {
		encs = append(encs, UTF8)
	}
	return append(encs, Windows1250, Latin1), nil
}

type headerCandidate struct {
	delim      rune
	row        int
	consistent int
	hints      int
}

// searchHeader finds the header record for each delimiter and picks the
// delimiter with the most consistent records below its header.
func searchHeader(text, enc string, delims []rune, truncated, lines bool) (Dialect, int, bool) {
	var best *headerCandidate
	for _, delim := range delims {
		records := scanRecords(text, delim, MaxRecords, truncated, lines)
		c, ok := findHeader(records, delim)
		if !ok {
			continue
		}
		if best == nil || c.consistent > best.consistent ||
			(c.consistent == best.consistent && c.hints > best.hints) {
			best = &c
		}
	}
	if best == nil {
		return Dialect{}, 0, false
	}
	return Dialect{Encoding: enc, Delimiter: best.delim, HeaderRow: best.row, PhysicalLines: lines}, best.consistent, true
}

func unbalancedQuotes(text string) bool {
	return strings.Count(text, `"`)%2 == 1
}

// findHeader returns the first record that looks like a header. A later
// candidate naming at least minHintScore known columns is preferred, so a
// preamble row with the header's shape is skipped.
func findHeader(records []record, delim rune) (headerCandidate, bool) {
	modal, ok := modalCount(records)
	if !ok {
		return headerCandidate{}, false
	}

	first := -1
	for i, rec := range records {
		if rec.count < 1 || !within(rec.count, modal) {
			continue
		}

		next := nextNonBlank(records, i+1)
		if next >= 0 && !consistent(rec.count, records[next].count) {
			continue
		}

		if first < 0 {
			first = i
		}
		if hintScore(rec.text, delim) >= minHintScore {
			return candidateAt(records, i, delim), true
		}
	}
	if first < 0 {
		return headerCandidate{}, false
	}
	return candidateAt(records, first, delim), true
}

func candidateAt(records []record, i int, delim rune) headerCandidate {
	rec := records[i]
	c := headerCandidate{delim: delim, row: i, hints: hintScore(rec.text, delim)}
	for _, follow := range records[i+1:] {
		if !follow.blank() && consistent(rec.count, follow.count) {
			c.consistent++
		}
	}
	return c
}

// modalScore returns the first record with the modal count and how many
// records share that count.
func modalScore(records []record) (header, score int) {
	modal, ok := modalCount(records)
	if !ok {
		return 0, 0
	}
	header = -1
	for i, rec := range records {
		if rec.count == modal {
			if header < 0 {
				header = i
			}
			score++
		}
	}
	return header, score
}

// modalCount returns the most common delimiter count among records that
// contain at least one delimiter. Ties go to the larger count.
func modalCount(records []record) (int, bool) {
	freq := make(map[int]int)
	for _, rec := range records {
		if rec.count >= 1 {
			freq[rec.count]++
		}
	}
	modal, best := 0, 0
	for count, n := range freq {
		if n > best || (n == best && count > modal) {
			modal, best = count, n
		}
	}
	return modal, best > 0
}

func nextNonBlank(records []record, from int) int {
	for i := from; i < len(records); i++ {
		if !records[i].blank() {
			return i
		}
	}
	return -1
}

func within(a, b int) bool {
	return a-b <= 1 && b-a <= 1
}

// consistent reports whether a record with count b can follow a header with
// count a. A trailing delimiter accounts for the tolerance of one.
func consistent(a, b int) bool {
	return b >= 1 && within(a, b)
}

func hintScore(text string, delim rune) int {
	score := 0
	for _, f := range fields(text, delim) {
		if headerHints[strings.ToLower(strings.TrimSpace(f))] {
			score++
		}
	}
	return score
}

// ValidateDelimiter rejects runes encoding/csv cannot use as a separator.
func ValidateDelimiter(r rune) error {
	if r == 0 || r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return &FormatDetectionError{Message: fmt.Sprintf("invalid delimiter %q", r)}
	}
	return nil
}

// ParseDelimiter parses a user supplied delimiter. "\t" and "tab" mean a tab.
func ParseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "":
		return 0, nil
	case `\t`, "tab":
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) {
		return 0, &FormatDetectionError{Message: fmt.Sprintf("delimiter %q must be a single character", s)}
	}
	if err := ValidateDelimiter(r); err != nil {
		return 0, err
	}
	return r, nil
}

// DelimiterName returns a printable name for a delimiter.
func DelimiterName(r rune) string {
	if r == '\t' {
		return `\t`
	}
	return string(r)
}

func delimiterList(delims []rune) string {
	names := make([]string, len(delims))
	for i, d := range delims {
		names[i] = fmt.Sprintf("%q", DelimiterName(d))
	}
	return strings.Join(names, " ")
}
