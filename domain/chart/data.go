package chart

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"datalens/domain/table"
)

// Frequency builds the (value, count) pairs for a column over the view's
// rows. Categories appear in first-seen order; nulls are excluded from the
// buckets and reported in NullCount.
func Frequency(v *table.View, column string) (FrequencyData, error) {
	col, ok := v.Table().Column(column)
	if !ok {
		return FrequencyData{}, fmt.Errorf("unknown column %q", column)
	}

	data := FrequencyData{Column: column}
	counts := make(map[string]int)
	var order []string
	for i := 0; i < v.Len(); i++ {
		r := v.Row(i)
		if col.IsNull(r) {
			data.NullCount++
			continue
		}
		val := col.Value(r)
		if _, seen := counts[val]; !seen {
			order = append(order, val)
		}
		counts[val]++
	}
	for _, val := range order {
		data.Buckets = append(data.Buckets, FrequencyBucket{Value: val, Count: counts[val]})
	}
	return data, nil
}

// Histogram bins a numeric column over the view's rows and computes the
// five-number summary for the box marginal. A view with no usable values
// yields Valid=false with zeroed statistics rather than an error.
func Histogram(v *table.View, column string) (HistogramData, error) {
	col, ok := v.Table().Column(column)
	if !ok {
		return HistogramData{}, fmt.Errorf("unknown column %q", column)
	}
	if col.Kind != table.KindNumber {
		return HistogramData{}, fmt.Errorf("column %q is not numeric", column)
	}

	data := HistogramData{Column: column, NullCount: v.NullCount(column)}
	values, _ := v.Numbers(column)
	if len(values) == 0 {
		return data, nil
	}
	data.Valid = true

	minVal, _ := stats.Min(values)
	maxVal, _ := stats.Max(values)
	median, _ := stats.Median(values)
	quartiles, err := stats.Quartile(values)
	if err != nil {
		// Fewer than 4 values: collapse the box onto the median.
		quartiles.Q1, quartiles.Q3 = median, median
	}
	data.Box = BoxStats{
		Min:    minVal,
		Q1:     quartiles.Q1,
		Median: median,
		Q3:     quartiles.Q3,
		Max:    maxVal,
	}

	data.Edges, data.Counts = bin(values, minVal, maxVal)
	return data, nil
}

// bin spreads values over Sturges-rule bins. Degenerate columns where every
// value is identical get a single bucket.
func bin(values []float64, minVal, maxVal float64) ([]float64, []int) {
	if minVal == maxVal {
		return []float64{minVal, maxVal}, []int{len(values)}
	}

	n := 1 + int(math.Ceil(math.Log2(float64(len(values)))))
	width := (maxVal - minVal) / float64(n)

	edges := make([]float64, n+1)
	for i := range edges {
		edges[i] = minVal + float64(i)*width
	}
	edges[n] = maxVal

	counts := make([]int, n)
	for _, val := range values {
		idx := int((val - minVal) / width)
		if idx >= n {
			idx = n - 1
		}
		counts[idx]++
	}
	return edges, counts
}
