package pdfs

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/miralago/reportes-gw/records"
)

// FacturaLinea is one printed invoice row
type FacturaLinea struct {
	Descripcion string
	Cantidad    int64
	Precio      decimal.Decimal
	Subtotal    decimal.Decimal
}

// FacturaDoc is everything the printed invoice shows
type FacturaDoc struct {
	FechaOrden string
	Cliente    records.Cliente
	Lineas     []FacturaLinea
	Total      decimal.Decimal
}

// Column x positions of the item table, in mm
const (
	facturaColDescripcion = 10
	facturaColCantidad    = 100
	facturaColPrecio      = 130
	facturaColSubtotal    = 160
)

// FacturaExporter renders the customer-facing invoice: centered restaurant
// header, order/client block, item table and the order total in quetzales.
type FacturaExporter struct{}

func (FacturaExporter) Export(w Writer, doc FacturaDoc) {
	paper := w.PaperSize()

	w.SetFont("helvetica", "bold", 12)
	header := "Restaurante Miralago, Panajachel"
	w.Text((paper.Width-w.TextWidth(header))/2, 20, header)

	w.SetFont("helvetica", "normal", 12)
	w.Text(10, 30, "Fecha y hora: "+orDefault(doc.FechaOrden, "No especificada"))
	w.Text(10, 40, "NIT: "+orDefault(doc.Cliente.NIT, "No especificado"))
	w.Text(70, 40, fmt.Sprintf("Nombre: %s %s", doc.Cliente.Nombre, doc.Cliente.Apellido))
	w.Text(10, 50, "Dirección: "+orDefault(doc.Cliente.Direccion, "No especificada"))

	w.SetFont("helvetica", "bold", 12)
	w.Text(10, 60, "Detalle Factura:")
	w.Text(facturaColDescripcion, 70, "Descripcion:")
	w.Text(facturaColCantidad, 70, "Cantidad:")
	w.Text(facturaColPrecio, 70, "Precio:")
	w.Text(facturaColSubtotal, 70, "Subtotal:")

	w.SetFont("helvetica", "normal", 12)
	for i, linea := range doc.Lineas {
		rowY := 80 + float64(i)*10
		w.Text(facturaColDescripcion, rowY, linea.Descripcion)
		w.Text(facturaColCantidad, rowY, fmt.Sprintf("%d", linea.Cantidad))
		w.Text(facturaColPrecio, rowY, "Q"+linea.Precio.StringFixed(2))
		w.Text(facturaColSubtotal, rowY, "Q"+linea.Subtotal.StringFixed(2))
	}

	totalY := 80 + float64(len(doc.Lineas))*10 + 10
	w.Text(10, totalY, "Total de la Orden: Q "+doc.Total.StringFixed(2))
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
