package records

import (
	"testing"

	"github.com/miralago/reportes-gw/tabular"
)

// The monthly sales table is filterable by every column the page shows,
// mesa number and total amount included.
func TestVentasMesTablaSearchesMesaYTotal(t *testing.T) {
	engine, err := tabular.NewEngine(VentasMesTabla())
	if err != nil {
		t.Fatal(err)
	}
	engine.Load([]VentaMes{
		{Anio: 2024, Mes: 1, NumeroMesa: 4, TotalVentas: MontoFromInt(1500)},
		{Anio: 2024, Mes: 2, NumeroMesa: 7, TotalVentas: MontoFromInt(320)},
		{Anio: 2025, Mes: 1, NumeroMesa: 12, TotalVentas: MontoFromInt(980)},
	})

	engine.Search("7")
	if got := engine.FilteredCount(); got != 1 {
		t.Errorf("search by mesa number matched %d rows, want 1", got)
	}

	engine.Search("1500")
	if got := engine.FilteredCount(); got != 1 {
		t.Errorf("search by total matched %d rows, want 1", got)
	}

	engine.Search("2024")
	if got := engine.FilteredCount(); got != 2 {
		t.Errorf("search by year matched %d rows, want 2", got)
	}
}

func TestVentasPlatilloTablaSearchesCantidadYTotal(t *testing.T) {
	engine, err := tabular.NewEngine(VentasPlatilloTabla())
	if err != nil {
		t.Fatal(err)
	}
	engine.Load([]VentaPlatillo{
		{NombrePlatillo: "Pepián", CantidadVendida: 48, TotalVentas: MontoFromInt(2400)},
		{NombrePlatillo: "Kak'ik", CantidadVendida: 31, TotalVentas: MontoFromInt(1860)},
		{NombrePlatillo: "Hilachas", CantidadVendida: 19, TotalVentas: MontoFromInt(950)},
	})

	engine.Search("31")
	if got := engine.FilteredCount(); got != 1 {
		t.Errorf("search by cantidad matched %d rows, want 1", got)
	}

	engine.Search("950.00")
	if got := engine.FilteredCount(); got != 1 {
		t.Errorf("search by total matched %d rows, want 1", got)
	}

	engine.Search("pep")
	if got := engine.FilteredCount(); got != 1 {
		t.Errorf("search by platillo matched %d rows, want 1", got)
	}
}
