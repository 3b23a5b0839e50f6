package chart

import (
	"testing"

	"datalens/domain/table"
)

func buildTable(t *testing.T, columns []table.Column) *table.Table {
	t.Helper()
	tbl, err := table.New(columns)
	if err != nil {
		t.Fatalf("table.New failed: %v", err)
	}
	return tbl
}

func TestFrequency_CountsSumToNonNullRows(t *testing.T) {
	tbl := buildTable(t, []table.Column{{
		Name:    "status",
		Kind:    table.KindString,
		Strings: []string{"Operativa", "Construccion", "Operativa", "", "Operativa"},
		Nulls:   []bool{false, false, false, true, false},
	}})

	data, err := Frequency(tbl.AllRows(), "status")
	if err != nil {
		t.Fatalf("Frequency failed: %v", err)
	}

	total := 0
	for _, b := range data.Buckets {
		total += b.Count
	}
	if want := tbl.RowCount() - data.NullCount; total != want {
		t.Errorf("bucket counts sum to %d, want %d", total, want)
	}
	if data.NullCount != 1 {
		t.Errorf("NullCount = %d, want 1", data.NullCount)
	}
	if len(data.Buckets) != 2 {
		t.Fatalf("buckets = %d, want 2", len(data.Buckets))
	}
	if data.Buckets[0].Value != "Operativa" || data.Buckets[0].Count != 3 {
		t.Errorf("first bucket = %+v, want Operativa:3", data.Buckets[0])
	}
}

func TestFrequency_UnknownColumn(t *testing.T) {
	tbl := buildTable(t, []table.Column{{
		Name:    "a",
		Kind:    table.KindString,
		Strings: []string{"x"},
		Nulls:   []bool{false},
	}})
	if _, err := Frequency(tbl.AllRows(), "missing"); err == nil {
		t.Error("expected error for unknown column")
	}
}

func TestHistogram_BinsAndBox(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	tbl := buildTable(t, []table.Column{{
		Name:    "v",
		Kind:    table.KindNumber,
		Numbers: values,
		Nulls:   make([]bool, len(values)),
	}})

	data, err := Histogram(tbl.AllRows(), "v")
	if err != nil {
		t.Fatalf("Histogram failed: %v", err)
	}
	if !data.Valid {
		t.Fatal("histogram over populated column must be valid")
	}

	total := 0
	for _, c := range data.Counts {
		total += c
	}
	if total != len(values) {
		t.Errorf("bin counts sum to %d, want %d", total, len(values))
	}
	if len(data.Edges) != len(data.Counts)+1 {
		t.Errorf("edges = %d for %d bins", len(data.Edges), len(data.Counts))
	}
	if data.Box.Min != 1 || data.Box.Max != 10 || data.Box.Median != 5.5 {
		t.Errorf("box = %+v", data.Box)
	}
}

func TestHistogram_EmptyViewIsSentinel(t *testing.T) {
	tbl := buildTable(t, []table.Column{{
		Name:    "v",
		Kind:    table.KindNumber,
		Numbers: []float64{1},
		Nulls:   []bool{false},
	}})

	data, err := Histogram(tbl.EmptyView(), "v")
	if err != nil {
		t.Fatalf("Histogram failed: %v", err)
	}
	if data.Valid {
		t.Error("zero-row histogram must be invalid, not an error")
	}
}

func TestHistogram_ConstantColumn(t *testing.T) {
	tbl := buildTable(t, []table.Column{{
		Name:    "v",
		Kind:    table.KindNumber,
		Numbers: []float64{5, 5, 5},
		Nulls:   make([]bool, 3),
	}})

	data, err := Histogram(tbl.AllRows(), "v")
	if err != nil {
		t.Fatalf("Histogram failed: %v", err)
	}
	if len(data.Counts) != 1 || data.Counts[0] != 3 {
		t.Errorf("constant column counts = %v, want [3]", data.Counts)
	}
}

func TestHistogram_NonNumericColumn(t *testing.T) {
	tbl := buildTable(t, []table.Column{{
		Name:    "s",
		Kind:    table.KindString,
		Strings: []string{"a"},
		Nulls:   []bool{false},
	}})
	if _, err := Histogram(tbl.AllRows(), "s"); err == nil {
		t.Error("expected error for non-numeric column")
	}
}
