// Package table holds the in-memory tabular dataset model: typed columns,
// the column classification that drives every downstream component, and the
// filter engine that derives row views from immutable source tables.
package table

import (
	"fmt"
	"strconv"
	"time"
)

// Kind is the declared storage type of a column, fixed at load time.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindBool
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	default:
		return "unknown"
	}
}

// Column is an ordered sequence of scalar values of one Kind.
// Exactly one of the value slices is populated, matching Kind; Nulls marks
// missing cells and always has the column's full length.
type Column struct {
	Name    string
	Kind    Kind
	Numbers []float64
	Strings []string
	Bools   []bool
	Times   []time.Time
	Nulls   []bool
}

// Len returns the number of cells in the column, including nulls.
func (c *Column) Len() int {
	return len(c.Nulls)
}

// IsNull reports whether the cell at row i is missing.
func (c *Column) IsNull(i int) bool {
	return i < 0 || i >= len(c.Nulls) || c.Nulls[i]
}

// NullCount returns the number of missing cells.
func (c *Column) NullCount() int {
	n := 0
	for _, isNull := range c.Nulls {
		if isNull {
			n++
		}
	}
	return n
}

// Number returns the numeric value at row i. Only valid for KindNumber.
func (c *Column) Number(i int) float64 {
	if c.Kind != KindNumber || c.IsNull(i) {
		return 0
	}
	return c.Numbers[i]
}

// Time returns the time value at row i. Only valid for KindTime.
func (c *Column) Time(i int) time.Time {
	if c.Kind != KindTime || c.IsNull(i) {
		return time.Time{}
	}
	return c.Times[i]
}

// Value renders the cell at row i as a display string. Null cells render
// as the empty string. Used for categorical matching and raw-data previews.
func (c *Column) Value(i int) string {
	if c.IsNull(i) {
		return ""
	}
	switch c.Kind {
	case KindNumber:
		return strconv.FormatFloat(c.Numbers[i], 'f', -1, 64)
	case KindString:
		return c.Strings[i]
	case KindBool:
		return strconv.FormatBool(c.Bools[i])
	case KindTime:
		return c.Times[i].Format("2006-01-02")
	default:
		return ""
	}
}

// DistinctValues returns the column's distinct non-null display values in
// first-seen order.
func (c *Column) DistinctValues() []string {
	seen := make(map[string]bool)
	var out []string
	for i := 0; i < c.Len(); i++ {
		if c.IsNull(i) {
			continue
		}
		v := c.Value(i)
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// Table is an ordered set of equal-length columns. Never mutated after load;
// filtering produces Views over the original rows.
type Table struct {
	columns []Column
	byName  map[string]int
	rows    int
}

// New builds a Table from columns, validating the equal-length invariant
// and rejecting duplicate or empty column names.
func New(columns []Column) (*Table, error) {
	t := &Table{
		columns: columns,
		byName:  make(map[string]int, len(columns)),
	}
	for i := range columns {
		col := &columns[i]
		if col.Name == "" {
			return nil, fmt.Errorf("column %d has an empty name", i)
		}
		if _, dup := t.byName[col.Name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", col.Name)
		}
		if i == 0 {
			t.rows = col.Len()
		} else if col.Len() != t.rows {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", col.Name, col.Len(), t.rows)
		}
		t.byName[col.Name] = i
	}
	return t, nil
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int { return t.rows }

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int { return len(t.columns) }

// ColumnNames returns column names in table order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i := range t.columns {
		names[i] = t.columns[i].Name
	}
	return names
}

// Column looks up a column by name.
func (t *Table) Column(name string) (*Column, bool) {
	idx, ok := t.byName[name]
	if !ok {
		return nil, false
	}
	return &t.columns[idx], true
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// View is a row subset of a Table. It holds source row indices only, so
// deriving a View never copies cell data and the source stays reusable for
// re-filtering.
type View struct {
	table *Table
	rows  []int
}

// AllRows returns a View covering every row of the table.
func (t *Table) AllRows() *View {
	rows := make([]int, t.rows)
	for i := range rows {
		rows[i] = i
	}
	return &View{table: t, rows: rows}
}

// EmptyView returns a zero-row View over the table.
func (t *Table) EmptyView() *View {
	return &View{table: t}
}

func newView(t *Table, rows []int) *View {
	return &View{table: t, rows: rows}
}

// Len returns the number of rows in the view.
func (v *View) Len() int { return len(v.rows) }

// Table returns the underlying source table.
func (v *View) Table() *Table { return v.table }

// Row maps a view row index to the source table row index.
func (v *View) Row(i int) int { return v.rows[i] }

// Numbers collects the non-null numeric values of a column over the view's
// rows. Returns false when the column is absent or not numeric.
func (v *View) Numbers(column string) ([]float64, bool) {
	col, ok := v.table.Column(column)
	if !ok || col.Kind != KindNumber {
		return nil, false
	}
	out := make([]float64, 0, len(v.rows))
	for _, r := range v.rows {
		if !col.IsNull(r) {
			out = append(out, col.Numbers[r])
		}
	}
	return out, true
}

// NullCount counts missing cells of a column over the view's rows.
func (v *View) NullCount(column string) int {
	col, ok := v.table.Column(column)
	if !ok {
		return 0
	}
	n := 0
	for _, r := range v.rows {
		if col.IsNull(r) {
			n++
		}
	}
	return n
}
