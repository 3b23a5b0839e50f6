package session

import (
	"testing"

	"datalens/domain/table"
)

func demoTable(t *testing.T) (*table.Table, table.Classification) {
	t.Helper()
	tbl, err := table.New([]table.Column{{
		Name:    "v",
		Kind:    table.KindNumber,
		Numbers: []float64{1, 2},
		Nulls:   make([]bool, 2),
	}})
	if err != nil {
		t.Fatalf("table.New failed: %v", err)
	}
	return tbl, table.Classify(tbl)
}

func TestStore_PutAndGet(t *testing.T) {
	store := NewStore()
	tbl, cls := demoTable(t)

	ds := store.Put("plants.csv", tbl, cls, false)
	if ds.ID == "" {
		t.Fatal("Put must assign an ID")
	}

	got, ok := store.Get(ds.ID)
	if !ok {
		t.Fatal("Get failed for stored dataset")
	}
	if got.Name != "plants.csv" || got.Table != tbl {
		t.Errorf("stored dataset mismatch: %+v", got)
	}
}

func TestStore_DatasetsAreIsolated(t *testing.T) {
	store := NewStore()
	tbl1, cls := demoTable(t)
	tbl2, _ := demoTable(t)

	a := store.Put("a.csv", tbl1, cls, false)
	b := store.Put("b.csv", tbl2, cls, true)

	if a.ID == b.ID {
		t.Fatal("datasets must get distinct IDs")
	}
	gotA, _ := store.Get(a.ID)
	gotB, _ := store.Get(b.ID)
	if gotA.Table == gotB.Table {
		t.Error("datasets must not share tables")
	}
	if gotA.EnergySchema || !gotB.EnergySchema {
		t.Error("energy schema flag leaked between datasets")
	}
}

func TestStore_GetUnknownID(t *testing.T) {
	store := NewStore()
	if _, ok := store.Get("nope"); ok {
		t.Error("Get must miss for unknown ID")
	}
}

func TestStore_Delete(t *testing.T) {
	store := NewStore()
	tbl, cls := demoTable(t)
	ds := store.Put("a.csv", tbl, cls, false)

	store.Delete(ds.ID)
	if _, ok := store.Get(ds.ID); ok {
		t.Error("dataset still present after Delete")
	}
	if store.Len() != 0 {
		t.Errorf("Len = %d, want 0", store.Len())
	}
}
