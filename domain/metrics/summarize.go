package metrics

import (
	"github.com/montanaflynn/stats"

	"datalens/domain/table"
)

// maxSampleValues caps the distinct values carried in a column profile.
const maxSampleValues = 10

// Summarize computes the metric snapshot for a view. columns selects which
// numeric columns to summarize; nil means every column the classification
// marks Numeric. Requested columns missing from the table are reported in
// MissingColumns, requested non-numeric columns are skipped.
func Summarize(v *table.View, cls table.Classification, columns []string) Snapshot {
	t := v.Table()
	snap := Snapshot{
		Rows:       v.Len(),
		Columns:    t.ColumnCount(),
		NullCounts: make(map[string]int, t.ColumnCount()),
	}

	for _, name := range t.ColumnNames() {
		n := v.NullCount(name)
		snap.NullCounts[name] = n
		snap.TotalNulls += n
	}

	if columns == nil {
		columns = cls.Numeric
	}
	for _, name := range columns {
		if !t.HasColumn(name) {
			snap.MissingColumns = append(snap.MissingColumns, name)
			continue
		}
		if cls.TypeOf(name) != table.Numeric {
			continue
		}
		snap.Numeric = append(snap.Numeric, summarizeColumn(v, name))
	}
	return snap
}

// summarizeColumn aggregates one numeric column over the view's non-null
// values. Zero values available means every statistic is a zero sentinel
// with Valid=false, never an error.
func summarizeColumn(v *table.View, name string) ColumnMetric {
	m := ColumnMetric{Column: name, NullCount: v.NullCount(name)}

	values, ok := v.Numbers(name)
	if !ok || len(values) == 0 {
		return m
	}
	m.NonNull = len(values)
	m.Valid = true

	// The stats library errors only on empty input, which is excluded
	// above, so the results are taken as-is.
	m.Sum, _ = stats.Sum(values)
	m.Mean, _ = stats.Mean(values)
	m.Min, _ = stats.Min(values)
	m.Max, _ = stats.Max(values)
	if len(values) > 1 {
		m.StdDev, _ = stats.StandardDeviationSample(values)
	}
	return m
}

// Describe builds per-column profiles for the whole view, pairing each
// column's bucket with distinct counts, sample values and, for numeric
// columns, its metric summary.
func Describe(v *table.View, cls table.Classification) []ColumnProfile {
	t := v.Table()
	profiles := make([]ColumnProfile, 0, t.ColumnCount())
	for _, name := range t.ColumnNames() {
		col, _ := t.Column(name)
		p := ColumnProfile{
			Name:      name,
			Type:      cls.TypeOf(name).String(),
			NullCount: v.NullCount(name),
		}

		distinct := distinctOverView(v, col)
		p.DistinctCount = len(distinct)
		if len(distinct) > maxSampleValues {
			distinct = distinct[:maxSampleValues]
		}
		p.SampleValues = distinct

		if cls.TypeOf(name) == table.Numeric {
			m := summarizeColumn(v, name)
			p.Summary = &m
		}
		profiles = append(profiles, p)
	}
	return profiles
}

func distinctOverView(v *table.View, col *table.Column) []string {
	seen := make(map[string]bool)
	var out []string
	for i := 0; i < v.Len(); i++ {
		r := v.Row(i)
		if col.IsNull(r) {
			continue
		}
		val := col.Value(r)
		if !seen[val] {
			seen[val] = true
			out = append(out, val)
		}
	}
	return out
}
