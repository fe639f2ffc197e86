// Package table holds a catalog export in memory and reads, filters and
// writes it.
package table

import (
	"fmt"
	"strconv"
	"strings"
)

// Table is an ordered set of equally long named columns.
// Cells are stored column-major so whole columns can be scanned cheaply.
type Table struct {
	headers []string // Header text as read
	keys    []string // Unique column keys
	index   map[string]int
	cols    [][]string
	rows    int
}

// New creates an empty table. Duplicate header cells get a ".1", ".2"
// suffix on their key while the header text itself is kept for output.
func New(headers []string) *Table {
	t := &Table{
		headers: append([]string(nil), headers...),
		keys:    make([]string, len(headers)),
		index:   make(map[string]int, len(headers)),
		cols:    make([][]string, len(headers)),
	}

	taken := make(map[string]bool, len(headers))
	for _, h := range headers {
		taken[h] = true
	}
	seen := make(map[string]bool, len(headers))
	for i, h := range headers {
		key := h
		if seen[h] {
			for n := 1; ; n++ {
				key = h + "." + strconv.Itoa(n)
				if !taken[key] {
					break
				}
			}
			taken[key] = true
		}
		seen[h] = true
		t.keys[i] = key
		t.index[key] = i
	}
	return t
}

// AppendRow adds a row. The number of values must equal the number of columns.
func (t *Table) AppendRow(values []string) error {
	if len(values) != len(t.cols) {
		return fmt.Errorf("row has %d fields, table has %d columns", len(values), len(t.cols))
	}
	for i, v := range values {
		t.cols[i] = append(t.cols[i], v)
	}
	t.rows++
	return nil
}

// Len returns the number of data rows.
func (t *Table) Len() int { return t.rows }

// Width returns the number of columns.
func (t *Table) Width() int { return len(t.keys) }

// Keys returns the column keys in table order.
func (t *Table) Keys() []string {
	return append([]string(nil), t.keys...)
}

// Headers returns the header text in table order.
func (t *Table) Headers() []string {
	return append([]string(nil), t.headers...)
}

// Has reports whether the table has a column with the given key.
func (t *Table) Has(key string) bool {
	_, ok := t.index[key]
	return ok
}

// Lookup finds a column key by exact match, then case-insensitively.
func (t *Table) Lookup(name string) (string, bool) {
	if t.Has(name) {
		return name, true
	}
	for _, key := range t.keys {
		if strings.EqualFold(key, name) {
			return key, true
		}
	}
	return "", false
}

// Get returns a cell value, or "" when the row or column does not exist.
func (t *Table) Get(row int, key string) string {
	i, ok := t.index[key]
	if !ok || row < 0 || row >= t.rows {
		return ""
	}
	return t.cols[i][row]
}

// Set replaces a cell value. It is the only way cells change after loading.
func (t *Table) Set(row int, key string, value string) error {
	i, ok := t.index[key]
	if !ok {
		return fmt.Errorf("unknown column %q", key)
	}
	if row < 0 || row >= t.rows {
		return fmt.Errorf("row %d out of range [0,%d)", row, t.rows)
	}
	t.cols[i][row] = value
	return nil
}

// Column returns a copy of a column's values.
func (t *Table) Column(key string) []string {
	i, ok := t.index[key]
	if !ok {
		return nil
	}
	return append([]string(nil), t.cols[i]...)
}

// Row returns a copy of a row's values in column order.
func (t *Table) Row(row int) []string {
	out := make([]string, len(t.cols))
	for i := range t.cols {
		out[i] = t.cols[i][row]
	}
	return out
}
