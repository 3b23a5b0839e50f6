package table

import (
	"testing"
	"time"
)

func energyTable(t *testing.T) *Table {
	t.Helper()
	return mustTable(t, []Column{
		stringColumn("Tecnologia", "Solar", "Eolica", "Solar"),
		stringColumn("Estado_Actual", "Operativa", "Construccion", "Operativa"),
		numberColumn("Capacidad_Instalada_MW", 100, 50, 75),
		stringColumn("Operador", "A", "B", "A"),
	})
}

func TestApply_CategoricalFilter(t *testing.T) {
	tbl := energyTable(t)
	sel := Selection{Include: map[string][]string{"Tecnologia": {"Solar"}}}

	view := Apply(tbl.AllRows(), sel)

	if view.Len() != 2 {
		t.Fatalf("filtered rows = %d, want 2", view.Len())
	}
	col, _ := tbl.Column("Tecnologia")
	for i := 0; i < view.Len(); i++ {
		if got := col.Value(view.Row(i)); got != "Solar" {
			t.Errorf("row %d has Tecnologia=%s, want Solar", i, got)
		}
	}
}

func TestApply_FiltersComposeWithAND(t *testing.T) {
	tbl := energyTable(t)
	sel := Selection{Include: map[string][]string{
		"Tecnologia":    {"Solar"},
		"Estado_Actual": {"Operativa"},
		"Operador":      {"A"},
	}}

	view := Apply(tbl.AllRows(), sel)
	if view.Len() != 2 {
		t.Errorf("filtered rows = %d, want 2", view.Len())
	}

	sel.Include["Operador"] = []string{"B"}
	view = Apply(tbl.AllRows(), sel)
	if view.Len() != 0 {
		t.Errorf("contradictory filters matched %d rows, want 0", view.Len())
	}
}

func TestApply_RowCountNeverGrows(t *testing.T) {
	tbl := energyTable(t)
	selections := []Selection{
		{},
		{Include: map[string][]string{"Tecnologia": {"Solar"}}},
		{Include: map[string][]string{"Tecnologia": {"Solar", "Eolica"}}},
		{Include: map[string][]string{"Operador": {"Z"}}},
	}
	for _, sel := range selections {
		view := Apply(tbl.AllRows(), sel)
		if view.Len() > tbl.RowCount() {
			t.Errorf("filtered view has %d rows, source has %d", view.Len(), tbl.RowCount())
		}
	}
}

func TestApply_EmptyAdmissibleSetYieldsEmptyView(t *testing.T) {
	tbl := energyTable(t)
	sel := Selection{Include: map[string][]string{"Tecnologia": {}}}

	if cols := sel.EmptyColumns(); len(cols) != 1 || cols[0] != "Tecnologia" {
		t.Fatalf("EmptyColumns = %v, want [Tecnologia]", cols)
	}

	view := Apply(tbl.AllRows(), sel)
	if view.Len() != 0 {
		t.Errorf("empty admissible set matched %d rows, want 0", view.Len())
	}
}

func TestApply_DoesNotMutateSource(t *testing.T) {
	tbl := energyTable(t)
	all := tbl.AllRows()

	_ = Apply(all, Selection{Include: map[string][]string{"Tecnologia": {"Solar"}}})

	// The original view must still cover every row so changing the
	// selection can be recomputed without a reload.
	if all.Len() != 3 {
		t.Errorf("source view has %d rows after filtering, want 3", all.Len())
	}
	again := Apply(all, Selection{Include: map[string][]string{"Tecnologia": {"Eolica"}}})
	if again.Len() != 1 {
		t.Errorf("re-filter matched %d rows, want 1", again.Len())
	}
}

func TestApply_NumberRange(t *testing.T) {
	tbl := energyTable(t)
	sel := Selection{NumberRanges: map[string]NumberRange{
		"Capacidad_Instalada_MW": {Min: 60, Max: 120},
	}}

	view := Apply(tbl.AllRows(), sel)
	if view.Len() != 2 {
		t.Errorf("range filter matched %d rows, want 2", view.Len())
	}
}

func TestApply_TimeRange(t *testing.T) {
	base := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	tbl := mustTable(t, []Column{
		{
			Name: "Fecha_Entrada_Operacion",
			Kind: KindTime,
			Times: []time.Time{
				base,
				base.AddDate(1, 0, 0),
				base.AddDate(2, 0, 0),
			},
			Nulls: make([]bool, 3),
		},
	})

	sel := Selection{TimeRanges: map[string]TimeRange{
		"Fecha_Entrada_Operacion": {From: base.AddDate(0, 6, 0)},
	}}
	view := Apply(tbl.AllRows(), sel)
	if view.Len() != 2 {
		t.Errorf("time range matched %d rows, want 2", view.Len())
	}
}

func TestApply_UnknownFilterColumnMatchesNothing(t *testing.T) {
	tbl := energyTable(t)
	sel := Selection{Include: map[string][]string{"NoSuchColumn": {"x"}}}

	view := Apply(tbl.AllRows(), sel)
	if view.Len() != 0 {
		t.Errorf("unknown column filter matched %d rows, want 0", view.Len())
	}
}
