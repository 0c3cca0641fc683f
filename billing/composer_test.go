package billing

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/miralago/reportes-gw/records"
)

func item(nombre string, cantidad int64, subtotal records.Monto) records.OrdenItem {
	return records.OrdenItem{Nombre: nombre, Cantidad: cantidad, Subtotal: subtotal}
}

func TestTotalCoercesLooseSubtotals(t *testing.T) {
	// number, numeric string and null in one order
	var quoted, null records.Monto
	if err := quoted.UnmarshalJSON([]byte(`"20"`)); err != nil {
		t.Fatal(err)
	}
	if err := null.UnmarshalJSON([]byte(`null`)); err != nil {
		t.Fatal(err)
	}
	orden := records.Orden{Items: []records.OrdenItem{
		item("Pepian", 1, records.MontoFromInt(10)),
		item("Kak'ik", 1, quoted),
		item("Tamales", 1, null),
	}}

	if got := Total(orden); !got.Equal(decimal.NewFromInt(30)) {
		t.Errorf("Total = %s, want 30", got)
	}
}

func TestTotalEmptyOrder(t *testing.T) {
	if got := Total(records.Orden{}); !got.IsZero() {
		t.Errorf("Total of empty order = %s, want 0", got)
	}
}

func TestLineItemsDerivesUnitPrice(t *testing.T) {
	orden := records.Orden{Items: []records.OrdenItem{
		item("Caldo Real", 4, records.MontoFromInt(120)),
		item("Regalo", 0, records.MontoFromInt(50)),
	}}

	items := LineItems(orden)
	if len(items) != 2 {
		t.Fatalf("LineItems returned %d rows, want 2", len(items))
	}
	if !items[0].PrecioUnitario.Equal(decimal.NewFromInt(30)) {
		t.Errorf("unit price = %s, want 30", items[0].PrecioUnitario)
	}
	if !items[1].PrecioUnitario.IsZero() {
		t.Errorf("zero-cantidad unit price = %s, want 0", items[1].PrecioUnitario)
	}
	if items[0].Nombre != "Caldo Real" || items[1].Nombre != "Regalo" {
		t.Errorf("line item order not preserved: %+v", items)
	}
}

func TestValidateClienteListsAllMissingFields(t *testing.T) {
	err := ValidateCliente(records.Cliente{Nombre: "Ana", Apellido: "  "})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	want := "Los siguientes campos son obligatorios: NIT, Apellido, Dirección"
	if verr.Error() != want {
		t.Errorf("message = %q, want %q", verr.Error(), want)
	}
}

func TestValidateClienteLengths(t *testing.T) {
	base := records.Cliente{NIT: "1234567", Nombre: "Ana", Apellido: "Pérez", Direccion: "Zona 2"}

	tests := []struct {
		name   string
		mutate func(*records.Cliente)
		want   string
	}{
		{
			"nit too long",
			func(c *records.Cliente) { c.NIT = "1234567890123ab" },
			"El NIT no puede tener más de 12 caracteres",
		},
		{
			"nombre too long",
			func(c *records.Cliente) { c.Nombre = longString(101) },
			"El nombre no puede tener más de 100 caracteres",
		},
		{
			"direccion too long",
			func(c *records.Cliente) { c.Direccion = longString(151) },
			"La dirección no puede tener más de 150 caracteres",
		},
		{
			"first violation wins",
			func(c *records.Cliente) { c.NIT = longString(13); c.Nombre = longString(101) },
			"El NIT no puede tener más de 12 caracteres",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			err := ValidateCliente(c)
			if err == nil || err.Error() != tt.want {
				t.Errorf("ValidateCliente = %v, want %q", err, tt.want)
			}
		})
	}

	if err := ValidateCliente(base); err != nil {
		t.Errorf("valid cliente rejected: %v", err)
	}
}

func longString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'x'
	}
	return string(b)
}

func TestBuscarClientes(t *testing.T) {
	clientes := []records.Cliente{
		{NIT: "1234567", Nombre: "María", Apellido: "López"},
		{NIT: "7654321", Nombre: "Juan", Apellido: "García"},
	}

	if got := BuscarClientes(clientes, ""); len(got) != 2 {
		t.Errorf("empty query returned %d clientes, want all", len(got))
	}
	if got := BuscarClientes(clientes, "garc"); len(got) != 1 || got[0].Nombre != "Juan" {
		t.Errorf("apellido search = %+v", got)
	}
	if got := BuscarClientes(clientes, "1234"); len(got) != 1 || got[0].Nombre != "María" {
		t.Errorf("nit search = %+v", got)
	}
}

type fakeCreator struct {
	id        int64
	err       error
	clienteID int64
	ordenID   int64
}

func (f *fakeCreator) CrearFactura(_ context.Context, clienteID, ordenID int64) (int64, error) {
	f.clienteID, f.ordenID = clienteID, ordenID
	return f.id, f.err
}

func TestSubmitFactura(t *testing.T) {
	creator := &fakeCreator{id: 77}
	c := NewComposer(creator)

	id, err := c.SubmitFactura(context.Background(), 3, 9)
	if err != nil {
		t.Fatalf("SubmitFactura: %v", err)
	}
	if id != 77 || creator.clienteID != 3 || creator.ordenID != 9 {
		t.Errorf("id=%d creator=%+v", id, creator)
	}

	if _, err := c.SubmitFactura(context.Background(), 0, 9); err == nil {
		t.Error("missing cliente accepted")
	}
	if _, err := c.SubmitFactura(context.Background(), 3, 0); err == nil {
		t.Error("missing orden accepted")
	}

	creator.err = errors.New("backend down")
	if _, err := c.SubmitFactura(context.Background(), 3, 9); err == nil {
		t.Error("creator error swallowed")
	}
}
