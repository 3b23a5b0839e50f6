// Package metrics computes KPI snapshots, per-column profiles and
// correlation matrices over a filtered table view. Every function returns
// defined sentinel values on zero-row input instead of faulting.
package metrics

// ColumnMetric is the scalar summary of one numeric column over the
// currently filtered rows. Valid is false when no non-null values were
// available; the numeric fields then hold zero sentinels.
type ColumnMetric struct {
	Column    string  `json:"column"`
	Sum       float64 `json:"sum"`
	Mean      float64 `json:"mean"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	StdDev    float64 `json:"stdDev"`
	NonNull   int     `json:"nonNull"`
	NullCount int     `json:"nullCount"`
	Valid     bool    `json:"valid"`
}

// Snapshot is the metric record for a filtered view. Recomputed after every
// filter change; a stale snapshot is a correctness bug, so nothing caches it.
type Snapshot struct {
	Rows       int            `json:"rows"`
	Columns    int            `json:"columns"`
	TotalNulls int            `json:"totalNulls"`
	NullCounts map[string]int `json:"nullCounts"`
	Numeric    []ColumnMetric `json:"numeric"`

	// Requested columns that were absent from the table. Absence is a
	// normal branch, not a fault: the corresponding metric is simply
	// not produced.
	MissingColumns []string `json:"missingColumns,omitempty"`
}

// Metric returns the metric for a column, if it was computed.
func (s Snapshot) Metric(column string) (ColumnMetric, bool) {
	for _, m := range s.Numeric {
		if m.Column == column {
			return m, true
		}
	}
	return ColumnMetric{}, false
}

// ColumnProfile is the per-column description fed into the advisory prompt
// and the dataset-info endpoint.
type ColumnProfile struct {
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	DistinctCount int      `json:"distinctCount"`
	NullCount     int      `json:"nullCount"`
	SampleValues  []string `json:"sampleValues,omitempty"`

	// Populated for numeric columns only.
	Summary *ColumnMetric `json:"summary,omitempty"`
}
