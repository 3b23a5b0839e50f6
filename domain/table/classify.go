package table

import (
	"strings"
	"time"
)

// ColumnType is the semantic bucket a column falls into. Every column of a
// table belongs to exactly one bucket.
type ColumnType int

const (
	Numeric ColumnType = iota
	Categorical
	Temporal
)

func (ct ColumnType) String() string {
	switch ct {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	case Temporal:
		return "temporal"
	default:
		return "unknown"
	}
}

// Classification partitions a table's columns into the three semantic
// buckets. Computed once per loaded table; filtering never changes it.
type Classification struct {
	Types       map[string]ColumnType
	Numeric     []string
	Categorical []string
	Temporal    []string
}

// TypeOf returns the bucket for a column, defaulting to Categorical for
// names the classification has never seen.
func (c Classification) TypeOf(column string) ColumnType {
	if ct, ok := c.Types[column]; ok {
		return ct
	}
	return Categorical
}

// dateLayouts are the formats tried when deciding whether a string column
// is temporal. Order matters: more specific layouts first.
var dateLayouts = []string{
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"2006/01/02",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// temporalNameHints flag columns whose name suggests a date. The uploaded
// datasets this service grew up on use Spanish headers, hence "fecha".
var temporalNameHints = []string{"fecha", "date", "_at"}

// Classify partitions every column of a table into Numeric, Categorical or
// Temporal. The mapping is total and idempotent: the same table always
// yields the same result.
//
// Rules, in order:
//   - number kind -> Numeric
//   - time kind -> Temporal (dates coerced at load)
//   - string kind whose name carries a date hint AND whose non-null values
//     all parse as dates -> Temporal; any parse failure falls back to
//     Categorical rather than faulting
//   - everything else (string, bool) -> Categorical
func Classify(t *Table) Classification {
	cls := Classification{Types: make(map[string]ColumnType, t.ColumnCount())}
	for _, name := range t.ColumnNames() {
		col, _ := t.Column(name)
		ct := classifyColumn(col)
		cls.Types[name] = ct
		switch ct {
		case Numeric:
			cls.Numeric = append(cls.Numeric, name)
		case Temporal:
			cls.Temporal = append(cls.Temporal, name)
		default:
			cls.Categorical = append(cls.Categorical, name)
		}
	}
	return cls
}

func classifyColumn(col *Column) ColumnType {
	switch col.Kind {
	case KindNumber:
		return Numeric
	case KindTime:
		return Temporal
	case KindString:
		if hasTemporalName(col.Name) && allParseAsDates(col) {
			return Temporal
		}
		return Categorical
	default:
		return Categorical
	}
}

func hasTemporalName(name string) bool {
	lower := strings.ToLower(name)
	for _, hint := range temporalNameHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

func allParseAsDates(col *Column) bool {
	sawValue := false
	for i := 0; i < col.Len(); i++ {
		if col.IsNull(i) {
			continue
		}
		sawValue = true
		if _, ok := ParseDate(col.Strings[i]); !ok {
			return false
		}
	}
	return sawValue
}

// ParseDate tries the recognized date layouts against a raw cell value.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
