// Package billing composes invoices out of delivered orders: line items with
// derived unit prices, defensive order totals, client data validation and the
// submission step. Submitting a factura only creates it on the backend; PDF
// generation and page navigation are separate caller-driven steps.
package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/miralago/reportes-gw/records"
)

const (
	maxLenNIT       = 12
	maxLenNombre    = 100
	maxLenApellido  = 100
	maxLenDireccion = 150
)

// LineItem is one invoice row. PrecioUnitario is derived, the backend only
// sends subtotals.
type LineItem struct {
	Nombre         string
	Cantidad       int64
	PrecioUnitario decimal.Decimal
	Subtotal       decimal.Decimal
}

// LineItems maps order items to invoice rows in order. Unit price is
// subtotal/cantidad when cantidad is positive, zero otherwise (never a
// division by zero).
func LineItems(orden records.Orden) []LineItem {
	items := make([]LineItem, 0, len(orden.Items))
	for _, it := range orden.Items {
		subtotal := it.Subtotal.OrZero()
		unit := decimal.Zero
		if it.Cantidad > 0 {
			unit = subtotal.Div(decimal.NewFromInt(it.Cantidad))
		}
		items = append(items, LineItem{
			Nombre:         it.DisplayNombre(),
			Cantidad:       it.Cantidad,
			PrecioUnitario: unit,
			Subtotal:       subtotal,
		})
	}
	return items
}

// Total sums the order's subtotals. Null or non-numeric subtotals contribute
// zero; a malformed item never breaks the invoice.
func Total(orden records.Orden) decimal.Decimal {
	total := decimal.Zero
	for _, it := range orden.Items {
		total = total.Add(it.Subtotal.OrZero())
	}
	return total
}

// ValidateCliente checks the client form before submission. Blank required
// fields are reported together in form order; only when all fields are
// present do the length limits apply, first violation only.
func ValidateCliente(c records.Cliente) error {
	var missing []string
	for _, f := range []struct {
		label string
		value string
	}{
		{"NIT", c.NIT},
		{"Nombre", c.Nombre},
		{"Apellido", c.Apellido},
		{"Dirección", c.Direccion},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.label)
		}
	}
	if len(missing) > 0 {
		return missingFieldsError(missing)
	}

	switch {
	case len(c.NIT) > maxLenNIT:
		return lengthError("El NIT no puede tener más de 12 caracteres")
	case len(c.Nombre) > maxLenNombre:
		return lengthError("El nombre no puede tener más de 100 caracteres")
	case len(c.Apellido) > maxLenApellido:
		return lengthError("El apellido no puede tener más de 100 caracteres")
	case len(c.Direccion) > maxLenDireccion:
		return lengthError("La dirección no puede tener más de 150 caracteres")
	}
	return nil
}

// BuscarClientes filters the client picker list: case-insensitive substring
// on nombre/apellido, plain substring on the NIT. Empty query returns the
// full list.
func BuscarClientes(clientes []records.Cliente, query string) []records.Cliente {
	if query == "" {
		return clientes
	}
	needle := strings.ToLower(query)
	out := make([]records.Cliente, 0, len(clientes))
	for _, c := range clientes {
		if strings.Contains(strings.ToLower(c.Nombre), needle) ||
			strings.Contains(strings.ToLower(c.Apellido), needle) ||
			strings.Contains(c.NIT, query) {
			out = append(out, c)
		}
	}
	return out
}

// FacturaCreator is the backend operation the composer needs: create the
// invoice and return its generated id
type FacturaCreator interface {
	CrearFactura(ctx context.Context, clienteID, ordenID int64) (int64, error)
}

// Composer drives the submission step of the billing flow
type Composer struct {
	creator FacturaCreator
}

func NewComposer(creator FacturaCreator) *Composer {
	return &Composer{creator: creator}
}

// SubmitFactura creates the invoice for (cliente, orden) and returns the
// generated id. It performs no PDF work and no navigation; callers chain
// those separately.
func (c *Composer) SubmitFactura(ctx context.Context, clienteID, ordenID int64) (int64, error) {
	if clienteID <= 0 {
		return 0, fmt.Errorf("billing: cliente no seleccionado")
	}
	if ordenID <= 0 {
		return 0, fmt.Errorf("billing: orden no seleccionada")
	}
	return c.creator.CrearFactura(ctx, clienteID, ordenID)
}
