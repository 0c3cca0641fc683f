package web

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/miralago/reportes-gw/records"
	"github.com/miralago/reportes-gw/tabular"
	"github.com/miralago/reportes-gw/tpl"
)

func loadedStore(t *testing.T) *tpl.HTMLTemplateStore {
	t.Helper()
	store := tpl.NewHTMLTemplateStore()
	if err := store.LoadBaseTemplates(filepath.Join("..", "templates", "html")); err != nil {
		t.Fatal(err)
	}
	if err := store.Combine("reportes/clientes", "layout", "reportes/clientes"); err != nil {
		t.Fatal(err)
	}
	return store
}

// A standing sort must survive both re-searching and page navigation: the
// search form carries it as hidden inputs and every page link repeats it.
func TestReportPageCarriesStandingSort(t *testing.T) {
	store := loadedStore(t)

	clientes := make([]records.Cliente, 0, 9)
	for i := 0; i < 9; i++ {
		clientes = append(clientes, records.Cliente{
			ID:     i + 1,
			Nombre: fmt.Sprintf("cliente-%02d", i),
		})
	}
	engine, err := tabular.NewEngine(records.ClientesTabla())
	if err != nil {
		t.Fatal(err)
	}
	engine.Load(clientes)
	engine.SortBy("nombre")

	var buf bytes.Buffer
	page := ReportPage{
		Username: "maria.gt",
		Reporte:  "clientes",
		Table:    BuildTableView("Informe de Clientes", engine),
	}
	if err = store.Render(&buf, "reportes/clientes", page); err != nil {
		t.Fatal(err)
	}
	html := buf.String()

	if !strings.Contains(html, `sort=nombre&amp;dir=asc&amp;page=2`) {
		t.Error("page link does not carry the standing sort")
	}
	if !strings.Contains(html, `name="sort" value="nombre"`) ||
		!strings.Contains(html, `name="dir" value="asc"`) {
		t.Error("search form does not carry the standing sort as hidden inputs")
	}
}

func TestBuildTableViewExposesStandingSort(t *testing.T) {
	e := cargar(t, []fila{{1, "b"}, {2, "a"}})

	v := BuildTableView("Prueba", e)
	if v.SortKey != "" || v.SortDirection != "" {
		t.Errorf("unsorted view exposes sort %q/%q", v.SortKey, v.SortDirection)
	}

	e.SortBy("nombre")
	e.SortBy("nombre") // descending
	v = BuildTableView("Prueba", e)
	if v.SortKey != "nombre" || v.SortDirection != "desc" {
		t.Errorf("SortKey/SortDirection = %q/%q, want nombre/desc", v.SortKey, v.SortDirection)
	}
}
