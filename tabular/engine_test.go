package tabular

import (
	"slices"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

type fila struct {
	ID     int
	Nombre string
	Total  decimal.Decimal
}

func filaConfig(itemsPerPage int) Config[fila] {
	return Config[fila]{
		ItemsPerPage: itemsPerPage,
		Columns: []Column[fila]{
			{Key: "id", Title: "ID", Value: func(f fila) any { return f.ID }},
			{Key: "nombre", Title: "Nombre", Value: func(f fila) any { return f.Nombre }, Searchable: true},
			{Key: "total", Title: "Total", Value: func(f fila) any { return f.Total }, Searchable: true},
		},
	}
}

func filas() []fila {
	return []fila{
		{1, "Caldo Real", decimal.NewFromInt(40)},
		{2, "Pepian", decimal.NewFromInt(35)},
		{3, "Kak'ik", decimal.NewFromInt(55)},
		{4, "Jocon", decimal.NewFromInt(30)},
		{5, "Tamales", decimal.NewFromInt(15)},
	}
}

func newTestEngine(t *testing.T, itemsPerPage int, records []fila) *Engine[fila] {
	t.Helper()
	e, err := NewEngine(filaConfig(itemsPerPage))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	e.Load(records)
	return e
}

func names(rows []fila) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Nombre
	}
	return out
}

func TestSortByToggleLaw(t *testing.T) {
	e := newTestEngine(t, 10, filas())

	e.SortBy("nombre")
	once := names(e.CurrentPageRows())
	e.SortBy("nombre")
	twice := names(e.CurrentPageRows())

	slices.Reverse(twice)
	if !slices.Equal(once, twice) {
		t.Errorf("second SortBy is not the reverse of the first: %v vs reversed %v", once, twice)
	}

	// third click starts ascending again
	e.SortBy("nombre")
	if got := e.Sort(); got.Direction != DirectionAsc {
		t.Errorf("third SortBy direction = %v, want asc", got.Direction)
	}
}

func TestSortByNewKeyResetsAscending(t *testing.T) {
	e := newTestEngine(t, 10, filas())

	e.SortBy("total")
	e.SortBy("total") // now desc
	e.SortBy("nombre")

	if got := e.Sort(); got.Key != "nombre" || got.Direction != DirectionAsc {
		t.Errorf("Sort() = %+v, want nombre asc", got)
	}
}

func TestSortByNumericColumn(t *testing.T) {
	e := newTestEngine(t, 10, filas())

	e.SortBy("total")
	got := names(e.CurrentPageRows())
	want := []string{"Tamales", "Jocon", "Pepian", "Caldo Real", "Kak'ik"}
	if !slices.Equal(got, want) {
		t.Errorf("numeric asc order = %v, want %v", got, want)
	}
}

func TestSortByUnknownKeyKeepsOrder(t *testing.T) {
	e := newTestEngine(t, 10, filas())
	before := names(e.CurrentPageRows())

	e.SortBy("no_such_column")

	after := names(e.CurrentPageRows())
	if !slices.Equal(before, after) {
		t.Errorf("unknown sort key changed order: %v -> %v", before, after)
	}
}

func TestSearchSoundnessAndCompleteness(t *testing.T) {
	e := newTestEngine(t, 10, filas())

	e.Search("AL")

	rows := e.CurrentPageRows()
	for _, r := range rows {
		if !strings.Contains(strings.ToLower(r.Nombre), "al") &&
			!strings.Contains(r.Total.StringFixed(2), "al") {
			t.Errorf("row %q does not match query", r.Nombre)
		}
	}
	// Caldo Real and Tamales match on nombre; nothing else contains "al"
	if got, want := names(rows), []string{"Caldo Real", "Tamales"}; !slices.Equal(got, want) {
		t.Errorf("Search rows = %v, want %v", got, want)
	}
}

func TestSearchKeepsSortResetsPage(t *testing.T) {
	e := newTestEngine(t, 1, filas())
	e.SortBy("total")
	e.SetPage(3)

	e.Search("a")

	if e.CurrentPage() != 1 {
		t.Errorf("page after Search = %d, want 1", e.CurrentPage())
	}
	if got := e.Sort(); got.Key != "total" || got.Direction != DirectionAsc {
		t.Errorf("Search dropped sort state: %+v", got)
	}
}

func TestPagePartition(t *testing.T) {
	e := newTestEngine(t, 2, filas())
	e.SortBy("nombre")

	var all []string
	for _, n := range e.PageNumbers() {
		e.SetPage(n)
		rows := e.CurrentPageRows()
		if len(rows) > 2 {
			t.Fatalf("page %d has %d rows, itemsPerPage = 2", n, len(rows))
		}
		all = append(all, names(rows)...)
	}

	if len(all) != len(filas()) {
		t.Fatalf("concatenated pages hold %d rows, want %d", len(all), len(filas()))
	}
	seen := make(map[string]int)
	for _, n := range all {
		seen[n]++
	}
	for _, f := range filas() {
		if seen[f.Nombre] != 1 {
			t.Errorf("row %q appears %d times across pages", f.Nombre, seen[f.Nombre])
		}
	}
}

func TestSetPageClamping(t *testing.T) {
	e := newTestEngine(t, 2, filas()) // 3 pages

	tests := []struct {
		name string
		page int
		want int
	}{
		{"below range", 0, 1},
		{"negative", -4, 1},
		{"in range", 2, 2},
		{"above range", 99, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e.SetPage(tt.page)
			if e.CurrentPage() != tt.want {
				t.Errorf("SetPage(%d) -> %d, want %d", tt.page, e.CurrentPage(), tt.want)
			}
		})
	}
}

func TestEmptyWorkingSet(t *testing.T) {
	e := newTestEngine(t, 8, nil)

	if e.TotalPages() != 0 {
		t.Errorf("TotalPages = %d, want 0", e.TotalPages())
	}
	if rows := e.CurrentPageRows(); len(rows) != 0 {
		t.Errorf("CurrentPageRows = %v, want empty", rows)
	}
	if e.CurrentPage() != 1 {
		t.Errorf("CurrentPage = %d, want 1", e.CurrentPage())
	}
}

func TestLoadResetsQueryAndPage(t *testing.T) {
	e := newTestEngine(t, 2, filas())
	e.Search("caldo")
	e.SetPage(1)

	e.Load(filas()[:3])

	if e.Query() != "" {
		t.Errorf("Load kept query %q", e.Query())
	}
	if e.FilteredCount() != 3 {
		t.Errorf("FilteredCount = %d, want 3", e.FilteredCount())
	}
	if e.CurrentPage() != 1 {
		t.Errorf("CurrentPage = %d, want 1", e.CurrentPage())
	}
}

func TestCurrentPageRowsIsSnapshot(t *testing.T) {
	e := newTestEngine(t, 10, filas())

	rows := e.CurrentPageRows()
	rows[0].Nombre = "mutated"

	if got := e.CurrentPageRows()[0].Nombre; got == "mutated" {
		t.Error("CurrentPageRows returned a live view, want a snapshot")
	}
}
