package web

import (
	"testing"

	"github.com/miralago/reportes-gw/tabular"
)

type fila struct {
	ID     int
	Nombre string
}

func filasTabla() tabular.Config[fila] {
	return tabular.Config[fila]{
		ItemsPerPage: 2,
		Columns: []tabular.Column[fila]{
			{Key: "id", Title: "ID", Value: func(f fila) any { return f.ID }},
			{Key: "nombre", Title: "Nombre", Value: func(f fila) any { return f.Nombre }, Searchable: true},
		},
	}
}

func cargar(t *testing.T, rows []fila) *tabular.Engine[fila] {
	t.Helper()
	e, err := tabular.NewEngine(filasTabla())
	if err != nil {
		t.Fatal(err)
	}
	e.Load(rows)
	return e
}

func TestBuildTableViewHeaderToggle(t *testing.T) {
	e := cargar(t, []fila{{1, "b"}, {2, "a"}})

	// unsorted: every header requests ascending
	v := BuildTableView("Prueba", e)
	for _, col := range v.Columns {
		if col.SortDir != "asc" {
			t.Errorf("column %s: SortDir = %q, want asc", col.Key, col.SortDir)
		}
	}

	// ascending on nombre: its header flips to desc, the other stays asc
	e.SortBy("nombre")
	v = BuildTableView("Prueba", e)
	for _, col := range v.Columns {
		switch col.Key {
		case "nombre":
			if !col.SortedAsc || col.SortDir != "desc" {
				t.Errorf("nombre: SortedAsc=%v SortDir=%q", col.SortedAsc, col.SortDir)
			}
		default:
			if col.SortDir != "asc" || col.SortedAsc || col.SortedDesc {
				t.Errorf("column %s unexpectedly marked sorted", col.Key)
			}
		}
	}

	if v.Rows[0][1] != "a" {
		t.Errorf("first cell after sort = %q, want a", v.Rows[0][1])
	}
}

func TestBuildTableViewEmptyState(t *testing.T) {
	e := cargar(t, nil)
	v := BuildTableView("Prueba", e)
	if !v.Empty {
		t.Error("Empty = false for empty working set")
	}
	if v.TotalPages != 0 || v.CurrentPage != 1 {
		t.Errorf("pages = %d/%d, want 1/0", v.CurrentPage, v.TotalPages)
	}
}

func TestApplyTableParamsDescending(t *testing.T) {
	e := cargar(t, []fila{{1, "a"}, {2, "b"}, {3, "c"}})
	applyTableParams(e, "", "nombre", "desc", 0)

	rows := e.CurrentPageRows()
	if rows[0].Nombre != "c" {
		t.Errorf("first row = %q, want c", rows[0].Nombre)
	}
}

func TestApplyTableParamsPageClamped(t *testing.T) {
	e := cargar(t, []fila{{1, "a"}, {2, "b"}, {3, "c"}})
	applyTableParams(e, "", "", "", 99)
	if e.CurrentPage() != 2 {
		t.Errorf("CurrentPage = %d, want 2", e.CurrentPage())
	}
}

func TestApplyTableParamsSearchFilters(t *testing.T) {
	e := cargar(t, []fila{{1, "ana"}, {2, "benito"}, {3, "mariana"}})
	applyTableParams(e, "ana", "", "", 0)
	if e.FilteredCount() != 2 {
		t.Errorf("FilteredCount = %d, want 2", e.FilteredCount())
	}
}
