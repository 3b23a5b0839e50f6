package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"datalens/domain/table"
)

// Correlation is the pairwise Pearson matrix over the view's numeric
// columns. When fewer than two numeric columns exist the matrix is not
// offered: Insufficient is set with an explanatory message instead of an
// error, matching the chart-selection edge-case policy.
type Correlation struct {
	Columns      []string    `json:"columns"`
	Matrix       [][]float64 `json:"matrix,omitempty"`
	Insufficient bool        `json:"insufficient"`
	Message      string      `json:"message,omitempty"`
}

// Correlate computes the correlation matrix for every pair of numeric
// columns, using only rows where both cells are non-null. Pairs without
// enough complete rows, and pairs undefined because a column is constant,
// correlate as zero. The matrix is always finite and JSON-marshalable.
func Correlate(v *table.View, cls table.Classification) Correlation {
	cols := cls.Numeric
	if len(cols) < 2 {
		return Correlation{
			Columns:      cols,
			Insufficient: true,
			Message:      "insufficient columns: correlation needs at least two numeric columns",
		}
	}

	matrix := make([][]float64, len(cols))
	for i := range cols {
		matrix[i] = make([]float64, len(cols))
		matrix[i][i] = 1
	}
	for i := 0; i < len(cols); i++ {
		for j := i + 1; j < len(cols); j++ {
			r := pairwiseCorrelation(v, cols[i], cols[j])
			matrix[i][j] = r
			matrix[j][i] = r
		}
	}
	return Correlation{Columns: cols, Matrix: matrix}
}

func pairwiseCorrelation(v *table.View, a, b string) float64 {
	colA, okA := v.Table().Column(a)
	colB, okB := v.Table().Column(b)
	if !okA || !okB {
		return 0
	}

	xs := make([]float64, 0, v.Len())
	ys := make([]float64, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		r := v.Row(i)
		if colA.IsNull(r) || colB.IsNull(r) {
			continue
		}
		xs = append(xs, colA.Number(r))
		ys = append(ys, colB.Number(r))
	}
	if len(xs) < 2 {
		return 0
	}
	// A constant column has zero variance, making the coefficient NaN.
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}
