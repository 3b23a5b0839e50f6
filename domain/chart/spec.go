// Package chart picks a chart family and field encoding from the semantic
// types of the selected columns, and materializes the render-ready data for
// frequency and histogram charts. Specs are derived values: recomputed per
// render, never persisted.
package chart

// Family identifies the chart family the shell should render.
type Family string

const (
	FamilyScatter    Family = "scatter"
	FamilyBox        Family = "box"
	FamilyHistogram  Family = "histogram"
	FamilyBar        Family = "bar"
	FamilyGroupedBar Family = "grouped_bar"
	FamilyLine       Family = "line"
	FamilyPie        Family = "pie"
)

// Spec describes which chart to render and how fields map onto encodings.
// The presentation shell consumes it as-is.
type Spec struct {
	Family Family `json:"family"`
	X      string `json:"x,omitempty"`
	Y      string `json:"y,omitempty"`
	Color  string `json:"color,omitempty"`
	Size   string `json:"size,omitempty"`
	Title  string `json:"title,omitempty"`

	// Horizontal flips a box plot so the categorical axis stays on one
	// consistent side regardless of which axis the user put it on.
	Horizontal bool `json:"horizontal,omitempty"`

	// BoxMarginal overlays box statistics on a histogram.
	BoxMarginal bool `json:"boxMarginal,omitempty"`

	// Note carries the informational message for pairings that are not
	// directly plottable (e.g. two categorical columns).
	Note string `json:"note,omitempty"`
}

// FrequencyBucket is one (value, count) pair of a frequency chart.
type FrequencyBucket struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// FrequencyData is the materialized bar chart of category frequencies.
// Nulls are excluded from the buckets and counted separately, so the bucket
// counts sum to the view's non-null row count for the column.
type FrequencyData struct {
	Column    string            `json:"column"`
	Buckets   []FrequencyBucket `json:"buckets"`
	NullCount int               `json:"nullCount"`
}

// HistogramData is the materialized histogram of a numeric column, with
// the quartile statistics for the overlaid box marginal. Valid is false
// when the column had no non-null values in the view.
type HistogramData struct {
	Column    string    `json:"column"`
	Edges     []float64 `json:"edges,omitempty"`
	Counts    []int     `json:"counts,omitempty"`
	Box       BoxStats  `json:"box"`
	NullCount int       `json:"nullCount"`
	Valid     bool      `json:"valid"`
}

// BoxStats are the five-number summary backing a box marginal or box plot.
type BoxStats struct {
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}
