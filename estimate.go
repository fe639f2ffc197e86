package catalogtl

import (
	"sort"
	"unicode/utf8"

	"github.com/ZaguanLabs/catalogtl/classify"
	"github.com/ZaguanLabs/catalogtl/table"
)

// ColumnCost is the volume one column would send.
type ColumnCost struct {
	Column     string `json:"column"`
	Characters int    `json:"characters"`
	Cells      int    `json:"cells"`
}

// CostReport is the character volume a run would submit, per column.
// Repeated texts are counted every time, so the report is an upper bound.
type CostReport struct {
	Columns []ColumnCost `json:"columns"` // Most characters first, then by name
	Total   int          `json:"total"`
	Rows    int          `json:"rows"`
}

// Estimate computes the cost report for the selected rows without
// contacting any service.
func Estimate(t *table.Table, rows []int, roles *classify.Result) *CostReport {
	costs := make(map[string]*ColumnCost)
	var order []string
	for _, col := range roles.Translatable() {
		if !t.Has(col) {
			continue
		}
		costs[col] = &ColumnCost{Column: col}
		order = append(order, col)
	}

	for _, u := range CollectUnits(t, rows, roles) {
		c := costs[u.Column]
		c.Characters += utf8.RuneCountInString(u.Text)
		c.Cells++
	}

	report := &CostReport{Rows: len(rows)}
	for _, col := range order {
		report.Columns = append(report.Columns, *costs[col])
		report.Total += costs[col].Characters
	}
	sort.SliceStable(report.Columns, func(i, j int) bool {
		a, b := report.Columns[i], report.Columns[j]
		if a.Characters != b.Characters {
			return a.Characters > b.Characters
		}
		return a.Column < b.Column
	})
	return report
}

// Characters returns the count for one column, 0 if it is not translated.
func (r *CostReport) Characters(column string) int {
	for _, c := range r.Columns {
		if c.Column == column {
			return c.Characters
		}
	}
	return 0
}
