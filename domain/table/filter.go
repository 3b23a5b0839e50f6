package table

import (
	"sort"
	"time"
)

// NumberRange restricts a numeric column to [Min, Max].
type NumberRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// TimeRange restricts a temporal column to [From, To]. Zero bounds are open.
type TimeRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Selection is the user's current set of active filters. It is an immutable
// value: the presentation shell replaces it wholesale on every change and
// passes it back into Apply, which never mutates the source table.
//
// A column present in Include with an empty value set means "exclude
// everything" and is surfaced to callers via EmptyColumns so they can warn
// instead of rendering an empty dashboard silently.
type Selection struct {
	Include      map[string][]string    `json:"include,omitempty"`
	NumberRanges map[string]NumberRange `json:"numberRanges,omitempty"`
	TimeRanges   map[string]TimeRange   `json:"timeRanges,omitempty"`
}

// IsEmpty reports whether the selection restricts nothing.
func (s Selection) IsEmpty() bool {
	return len(s.Include) == 0 && len(s.NumberRanges) == 0 && len(s.TimeRanges) == 0
}

// EmptyColumns returns the columns whose admissible set is explicitly empty,
// sorted for stable warnings.
func (s Selection) EmptyColumns() []string {
	var cols []string
	for col, vals := range s.Include {
		if len(vals) == 0 {
			cols = append(cols, col)
		}
	}
	sort.Strings(cols)
	return cols
}

// Apply returns the view of rows matching every active filter. Filters on
// different columns compose with AND; values within one admissible set
// compose with OR. If any admissible set is empty the result is the empty
// view, as defined by the selection contract.
func Apply(v *View, s Selection) *View {
	if s.IsEmpty() {
		return v
	}
	if len(s.EmptyColumns()) > 0 {
		return v.table.EmptyView()
	}

	sets := make(map[string]map[string]bool, len(s.Include))
	for col, vals := range s.Include {
		set := make(map[string]bool, len(vals))
		for _, val := range vals {
			set[val] = true
		}
		sets[col] = set
	}

	matched := make([]int, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		r := v.Row(i)
		if rowMatches(v.table, r, sets, s) {
			matched = append(matched, r)
		}
	}
	return newView(v.table, matched)
}

func rowMatches(t *Table, row int, sets map[string]map[string]bool, s Selection) bool {
	for name, set := range sets {
		col, ok := t.Column(name)
		if !ok {
			return false
		}
		if !set[col.Value(row)] {
			return false
		}
	}
	for name, rng := range s.NumberRanges {
		col, ok := t.Column(name)
		if !ok || col.Kind != KindNumber || col.IsNull(row) {
			return false
		}
		val := col.Number(row)
		if val < rng.Min || val > rng.Max {
			return false
		}
	}
	for name, rng := range s.TimeRanges {
		col, ok := t.Column(name)
		if !ok || col.Kind != KindTime || col.IsNull(row) {
			return false
		}
		ts := col.Time(row)
		if !rng.From.IsZero() && ts.Before(rng.From) {
			return false
		}
		if !rng.To.IsZero() && ts.After(rng.To) {
			return false
		}
	}
	return true
}
