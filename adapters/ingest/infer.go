package ingest

import (
	"context"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"datalens/domain/table"
)

// maxConcurrentColumns bounds the per-column inference fan-out for wide
// uploads.
const maxConcurrentColumns = 4

// nullMarkers are raw cell values treated as missing.
var nullMarkers = map[string]bool{
	"":     true,
	"null": true,
	"NULL": true,
	"N/A":  true,
	"n/a":  true,
}

// inferColumns types each raw column independently. Columns are processed
// concurrently under a weighted semaphore; the result order matches the
// header order.
func inferColumns(headers []string, raw [][]string) ([]table.Column, error) {
	columns := make([]table.Column, len(headers))

	sem := semaphore.NewWeighted(maxConcurrentColumns)
	var wg sync.WaitGroup
	ctx := context.Background()

	for i := range headers {
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			defer sem.Release(1)
			columns[idx] = inferColumn(headers[idx], raw[idx])
		}(i)
	}
	wg.Wait()

	return columns, nil
}

// inferColumn decides one column's kind and coerces its values. The declared
// kind must hold for every non-null cell: a single non-conforming value
// demotes the column to the next candidate, ending at string. Date parsing
// here is the load-time coercion the classifier relies on.
func inferColumn(name string, values []string) table.Column {
	col := table.Column{
		Name:  name,
		Nulls: make([]bool, len(values)),
	}
	for i, v := range values {
		col.Nulls[i] = nullMarkers[v]
	}

	switch {
	case allNumeric(values, col.Nulls):
		col.Kind = table.KindNumber
		col.Numbers = make([]float64, len(values))
		for i, v := range values {
			if !col.Nulls[i] {
				col.Numbers[i], _ = parseNumber(v)
			}
		}
	case allBool(values, col.Nulls):
		col.Kind = table.KindBool
		col.Bools = make([]bool, len(values))
		for i, v := range values {
			if !col.Nulls[i] {
				col.Bools[i] = parseBool(v)
			}
		}
	case allDates(values, col.Nulls):
		col.Kind = table.KindTime
		col.Times = make([]time.Time, len(values))
		for i, v := range values {
			if !col.Nulls[i] {
				col.Times[i], _ = table.ParseDate(v)
			}
		}
	default:
		col.Kind = table.KindString
		col.Strings = make([]string, len(values))
		copy(col.Strings, values)
	}
	return col
}

func allNumeric(values []string, nulls []bool) bool {
	sawValue := false
	for i, v := range values {
		if nulls[i] {
			continue
		}
		sawValue = true
		if _, ok := parseNumber(v); !ok {
			return false
		}
	}
	return sawValue
}

func allBool(values []string, nulls []bool) bool {
	sawValue := false
	for i, v := range values {
		if nulls[i] {
			continue
		}
		sawValue = true
		switch strings.ToLower(v) {
		case "true", "false", "yes", "no":
		default:
			return false
		}
	}
	return sawValue
}

func allDates(values []string, nulls []bool) bool {
	sawValue := false
	for i, v := range values {
		if nulls[i] {
			continue
		}
		sawValue = true
		if _, ok := table.ParseDate(v); !ok {
			return false
		}
	}
	return sawValue
}

// parseNumber accepts plain floats plus thousands separators ("1,234.56").
// ParseFloat also accepts "NaN" and "Inf" spellings; those are rejected so
// numeric columns stay finite end to end.
func parseNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "yes":
		return true
	default:
		return false
	}
}
