package metrics

import (
	"math"
	"testing"

	"datalens/domain/table"
)

func TestCorrelate_InsufficientColumns(t *testing.T) {
	tbl := buildTable(t, []table.Column{
		numberCol("only", 1, 2, 3),
		stringCol("tech", "a", "b", "c"),
	})
	cls := table.Classify(tbl)

	result := Correlate(tbl.AllRows(), cls)

	if !result.Insufficient {
		t.Fatal("one numeric column must report insufficient, not attempt a 1x1 matrix")
	}
	if result.Message == "" {
		t.Error("insufficient result should carry a message")
	}
	if result.Matrix != nil {
		t.Error("insufficient result must not carry a matrix")
	}
}

func TestCorrelate_PerfectCorrelation(t *testing.T) {
	tbl := buildTable(t, []table.Column{
		numberCol("x", 1, 2, 3, 4),
		numberCol("y", 2, 4, 6, 8),
	})
	cls := table.Classify(tbl)

	result := Correlate(tbl.AllRows(), cls)

	if result.Insufficient {
		t.Fatal("two numeric columns should correlate")
	}
	if math.Abs(result.Matrix[0][1]-1) > 1e-9 {
		t.Errorf("corr(x,y) = %v, want 1", result.Matrix[0][1])
	}
	if result.Matrix[0][0] != 1 || result.Matrix[1][1] != 1 {
		t.Error("diagonal must be 1")
	}
	if result.Matrix[0][1] != result.Matrix[1][0] {
		t.Error("matrix must be symmetric")
	}
}

func TestCorrelate_ConstantColumnIsZeroAndFinite(t *testing.T) {
	tbl := buildTable(t, []table.Column{
		numberCol("constant", 5, 5, 5),
		numberCol("y", 1, 2, 3),
	})
	cls := table.Classify(tbl)

	result := Correlate(tbl.AllRows(), cls)

	if result.Insufficient {
		t.Fatal("constant column must still produce a matrix")
	}
	if result.Matrix[0][1] != 0 || result.Matrix[1][0] != 0 {
		t.Errorf("corr(constant,y) = %v, want 0 sentinel", result.Matrix[0][1])
	}
	for i := range result.Matrix {
		for j, r := range result.Matrix[i] {
			if math.IsNaN(r) || math.IsInf(r, 0) {
				t.Errorf("matrix[%d][%d] = %v, must be finite", i, j, r)
			}
		}
	}
}

func TestCorrelate_SkipsRowsWithNulls(t *testing.T) {
	tbl := buildTable(t, []table.Column{
		{
			Name:    "x",
			Kind:    table.KindNumber,
			Numbers: []float64{1, 2, 3, 100},
			Nulls:   []bool{false, false, false, true},
		},
		numberCol("y", 1, 2, 3, 4),
	})
	cls := table.Classify(tbl)

	result := Correlate(tbl.AllRows(), cls)
	if math.Abs(result.Matrix[0][1]-1) > 1e-9 {
		t.Errorf("corr with null row excluded = %v, want 1", result.Matrix[0][1])
	}
}
