package catalogtl

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/ZaguanLabs/catalogtl/classify"
	"github.com/ZaguanLabs/catalogtl/table"
)

// CollectUnits returns one unit per non-blank cell of the selected rows in
// translatable columns. Units are ordered column by column in table order.
func CollectUnits(t *table.Table, rows []int, roles *classify.Result) []Unit {
	var units []Unit
	for _, col := range t.Keys() {
		if roles.Role(col) != classify.Translatable {
			continue
		}
		hint := roles.Markup(col)
		for _, row := range rows {
			text := strings.TrimSpace(t.Get(row, col))
			if text == "" {
				continue
			}
			units = append(units, Unit{
				Row:    row,
				Column: col,
				Text:   text,
				Markup: hint || HasMarkup(text),
			})
		}
	}
	return units
}

// HasMarkup reports whether text contains at least one HTML tag.
func HasMarkup(text string) bool {
	if !strings.Contains(text, "<") {
		return false
	}
	z := html.NewTokenizer(strings.NewReader(text))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			return true
		}
	}
}

// PlanBatches groups units into batches. A batch holds units of a single
// column and markup flag and stays within limits; a unit larger than
// MaxChars is sent alone.
func PlanBatches(units []Unit, limits BatchLimits) []Batch {
	if limits.MaxUnits <= 0 {
		limits.MaxUnits = DefaultBatchLimits().MaxUnits
	}
	if limits.MaxChars <= 0 {
		limits.MaxChars = DefaultBatchLimits().MaxChars
	}

	var (
		batches []Batch
		open    = map[bool]*Batch{}
		chars   = map[bool]int{}
		column  string
	)

	flush := func(markup bool) {
		b := open[markup]
		if b == nil {
			return
		}
		b.Index = len(batches)
		batches = append(batches, *b)
		delete(open, markup)
		chars[markup] = 0
	}

	for _, u := range units {
		if u.Column != column {
			flush(false)
			flush(true)
			column = u.Column
		}

		n := utf8.RuneCountInString(u.Text)
		if b := open[u.Markup]; b != nil &&
			(len(b.Units) >= limits.MaxUnits || chars[u.Markup]+n > limits.MaxChars) {
			flush(u.Markup)
		}

		if open[u.Markup] == nil {
			open[u.Markup] = &Batch{Column: u.Column, Markup: u.Markup}
		}
		b := open[u.Markup]
		b.Units = append(b.Units, u)
		chars[u.Markup] += n
	}
	flush(false)
	flush(true)

	return batches
}

// PreserveWhitespace wraps translated in the leading and trailing whitespace
// of original.
func PreserveWhitespace(original, translated string) string {
	trimmedLeft := strings.TrimLeftFunc(original, unicode.IsSpace)
	leading := original[:len(original)-len(trimmedLeft)]
	if trimmedLeft == "" {
		return leading + translated
	}
	trimmed := strings.TrimRightFunc(trimmedLeft, unicode.IsSpace)
	trailing := trimmedLeft[len(trimmed):]
	return leading + strings.TrimSpace(translated) + trailing
}
