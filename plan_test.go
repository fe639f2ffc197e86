package catalogtl

import (
	"strings"
	"testing"

	"github.com/ZaguanLabs/catalogtl/classify"
)

func TestCollectUnits(t *testing.T) {
	tbl := newTestTable(t,
		[]string{"ID", "Name", "Description", "SKU"},
		[]string{"1", "  Perfume ", "<p>A fresh fragrance</p>", "P-1"},
		[]string{"2", "", "   ", "P-2"},
		[]string{"3", "Rose oil", "Plain", "P-3"},
	)
	roles := classify.Classify(tbl.Keys(), classify.Options{})

	units := CollectUnits(tbl, []int{0, 1, 2}, roles)
	if len(units) != 4 {
		t.Fatalf("Expected 4 units, got %d: %+v", len(units), units)
	}

	want := []Unit{
		{Row: 0, Column: "Name", Text: "Perfume"},
		{Row: 2, Column: "Name", Text: "Rose oil"},
		{Row: 0, Column: "Description", Text: "<p>A fresh fragrance</p>", Markup: true},
		{Row: 2, Column: "Description", Text: "Plain", Markup: true},
	}
	for i, u := range units {
		if u != want[i] {
			t.Errorf("unit %d: got %+v, want %+v", i, u, want[i])
		}
	}
}

func TestCollectUnits_RowSubset(t *testing.T) {
	tbl := newTestTable(t, []string{"Name"}, []string{"a"}, []string{"b"}, []string{"c"})
	roles := classify.Classify(tbl.Keys(), classify.Options{})

	units := CollectUnits(tbl, []int{2}, roles)
	if len(units) != 1 || units[0].Row != 2 || units[0].Text != "c" {
		t.Errorf("Unexpected units %+v", units)
	}
}

func TestHasMarkup(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Plain text", false},
		{"<strong>Rose</strong> oil", true},
		{"Line<br/>break", true},
		{"closing only</p>", true},
		{"2 < 3 and 5 > 4", false},
		{"a <3 b", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := HasMarkup(tt.text); got != tt.want {
			t.Errorf("HasMarkup(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func unitsFor(column string, texts ...string) []Unit {
	units := make([]Unit, len(texts))
	for i, text := range texts {
		units[i] = Unit{Row: i, Column: column, Text: text}
	}
	return units
}

func TestPlanBatches_MaxUnits(t *testing.T) {
	batches := PlanBatches(unitsFor("Name", "a", "b", "c", "d", "e"), BatchLimits{MaxUnits: 2, MaxChars: 100})

	if len(batches) != 3 {
		t.Fatalf("Expected 3 batches, got %d", len(batches))
	}
	for i, b := range batches {
		if b.Index != i {
			t.Errorf("batch %d has index %d", i, b.Index)
		}
	}
	if len(batches[2].Units) != 1 {
		t.Errorf("Expected last batch to hold 1 unit, got %d", len(batches[2].Units))
	}
}

func TestPlanBatches_MaxChars(t *testing.T) {
	units := unitsFor("Name", strings.Repeat("ä", 4), strings.Repeat("b", 4), strings.Repeat("c", 4))
	batches := PlanBatches(units, BatchLimits{MaxUnits: 10, MaxChars: 8})

	if len(batches) != 2 {
		t.Fatalf("Expected 2 batches, got %d", len(batches))
	}
	if len(batches[0].Units) != 2 {
		t.Errorf("Characters are counted as runes; expected 2 units in first batch, got %d", len(batches[0].Units))
	}
}

func TestPlanBatches_OversizedUnitAlone(t *testing.T) {
	units := unitsFor("Name", "ab", strings.Repeat("x", 50), "cd")
	batches := PlanBatches(units, BatchLimits{MaxUnits: 10, MaxChars: 10})

	if len(batches) != 3 {
		t.Fatalf("Expected 3 batches, got %d", len(batches))
	}
	if len(batches[1].Units) != 1 || batches[1].Units[0].Text != units[1].Text {
		t.Errorf("Oversized unit should be sent alone, got %+v", batches[1].Units)
	}
}

func TestPlanBatches_ColumnAndMarkupSeparation(t *testing.T) {
	units := []Unit{
		{Row: 0, Column: "Name", Text: "a"},
		{Row: 1, Column: "Name", Text: "<b>b</b>", Markup: true},
		{Row: 2, Column: "Name", Text: "c"},
		{Row: 0, Column: "Description", Text: "d", Markup: true},
	}
	batches := PlanBatches(units, DefaultBatchLimits())

	if len(batches) != 3 {
		t.Fatalf("Expected 3 batches, got %d", len(batches))
	}
	for _, b := range batches {
		for _, u := range b.Units {
			if u.Column != b.Column || u.Markup != b.Markup {
				t.Errorf("batch %d mixes units: %+v", b.Index, u)
			}
		}
	}
	if len(batches[0].Units) != 2 || batches[0].Markup {
		t.Errorf("Plain Name units should share a batch, got %+v", batches[0])
	}
}

func TestPlanBatches_Empty(t *testing.T) {
	if batches := PlanBatches(nil, DefaultBatchLimits()); len(batches) != 0 {
		t.Errorf("Expected no batches, got %d", len(batches))
	}
}

func TestBatch_Rows(t *testing.T) {
	b := Batch{Units: []Unit{{Row: 4}, {Row: 2}, {Row: 9}}}
	first, last := b.Rows()
	if first != 2 || last != 9 {
		t.Errorf("Expected rows 2..9, got %d..%d", first, last)
	}

	empty := Batch{}
	if first, last := empty.Rows(); first != -1 || last != -1 {
		t.Errorf("Expected -1..-1 for empty batch, got %d..%d", first, last)
	}
}

func TestPreserveWhitespace(t *testing.T) {
	tests := []struct {
		original   string
		translated string
		want       string
	}{
		{"Hello", "Hallo", "Hallo"},
		{"  Hello  ", "Hallo", "  Hallo  "},
		{"\nHello\t", " Hallo ", "\nHallo\t"},
		{" Hello", "Hallo", " Hallo"},
		{"   ", "x", "   x"},
	}

	for _, tt := range tests {
		if got := PreserveWhitespace(tt.original, tt.translated); got != tt.want {
			t.Errorf("PreserveWhitespace(%q, %q) = %q, want %q", tt.original, tt.translated, got, tt.want)
		}
	}
}
