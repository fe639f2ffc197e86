package table

import "strings"

// DefaultFilterColumn is the taxonomy column inspected by a Filter.
const DefaultFilterColumn = "Categories"

// Filter restricts which rows are translated. Zero values mean no restriction.
type Filter struct {
	Column   string // Column the predicate inspects, DefaultFilterColumn if empty
	Contains string // Case-insensitive substring the column must contain
	Limit    int    // Keep at most this many matching rows
}

func (f Filter) column() string {
	if f.Column == "" {
		return DefaultFilterColumn
	}
	return f.Column
}

// ColumnMissing reports whether the filter has a predicate whose column is
// absent from t. Such a predicate is ignored by Select.
func (f Filter) ColumnMissing(t *Table) bool {
	if f.Contains == "" {
		return false
	}
	_, ok := t.Lookup(f.column())
	return !ok
}

// Select returns the indices of the rows that pass the filter, in table
// order. Rows are never removed from the table itself.
func Select(t *Table, f Filter) []int {
	key, hasColumn := t.Lookup(f.column())
	needle := strings.ToLower(f.Contains)

	rows := make([]int, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		if f.Limit > 0 && len(rows) >= f.Limit {
			break
		}
		if needle != "" && hasColumn && !strings.Contains(strings.ToLower(t.Get(i, key)), needle) {
			continue
		}
		rows = append(rows, i)
	}
	return rows
}
