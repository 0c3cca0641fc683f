package pdfs

import (
	"io"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/miralago/reportes-gw/records"
)

// fakeWriter records draw calls per page instead of producing a document
type fakeWriter struct {
	paper PaperSize

	texts  []string
	images []imageCall // across all pages
	page   int
}

type imageCall struct {
	page   int
	y      float64
	height float64
}

func newFakeWriter() *fakeWriter {
	return &fakeWriter{paper: A4Size, page: 1}
}

func (f *fakeWriter) PaperSize() PaperSize  { return f.paper }
func (f *fakeWriter) Orientation() string   { return "portrait" }
func (f *fakeWriter) AddBlankPage()         { f.page++ }
func (f *fakeWriter) SetFont(string, string, float64) {}
func (f *fakeWriter) SetTextColor(uint8, uint8, uint8) {}
func (f *fakeWriter) Text(_, _ float64, text string) { f.texts = append(f.texts, text) }
func (f *fakeWriter) TextWidth(text string) float64  { return float64(len(text)) * 2 }
func (f *fakeWriter) SetLineWidth(float64)           {}
func (f *fakeWriter) Line(_, _, _, _ float64)        {}

func (f *fakeWriter) Image(_ []byte, _ float64, y float64, _ float64, height float64) {
	f.images = append(f.images, imageCall{page: f.page, y: y, height: height})
}

func (f *fakeWriter) WriteTo(io.Writer) (int64, error) { return 0, nil }
func (f *fakeWriter) WriteToFile(string) error         { return nil }
func (f *fakeWriter) ProduceBytes() ([]byte, error)    { return nil, nil }

func (f *fakeWriter) hasText(s string) bool {
	for _, t := range f.texts {
		if strings.Contains(t, s) {
			return true
		}
	}
	return false
}

func exportCapture(t *testing.T, pxHeight float64) *fakeWriter {
	t.Helper()
	w := newFakeWriter()
	e := ReportExporter{Title: "Informe de Clientes", Description: "Este reporte muestra el total de Clientes."}
	e.Export(w, Capture{PNG: []byte("png"), Width: 900, Height: pxHeight}, time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC))
	return w
}

func TestExportHeaderBlock(t *testing.T) {
	w := exportCapture(t, 300)

	for _, want := range []string{
		"Informe de Clientes",
		"Este reporte muestra el total de Clientes.",
		"Fecha de generación: 28/8/2026",
		"Página: 1",
	} {
		if !w.hasText(want) {
			t.Errorf("header text %q missing; got %v", want, w.texts)
		}
	}
}

func TestExportShortCaptureSinglePage(t *testing.T) {
	w := exportCapture(t, 300)

	if got := w.page; got != 1 {
		t.Errorf("pages = %d, want 1", got)
	}
	if len(w.images) != 1 {
		t.Fatalf("image draws = %d, want 1", len(w.images))
	}
}

// Tall captures must continue on later pages so every vertical stripe of the
// image is visible somewhere.
func TestExportTallCaptureCoversAllContent(t *testing.T) {
	for _, pxHeight := range []float64{2000, 4500, 9000} {
		w := exportCapture(t, pxHeight)

		if len(w.images) < 2 {
			t.Fatalf("pxHeight %v: image draws = %d, want slices on multiple pages", pxHeight, len(w.images))
		}

		imgHeight := w.images[0].height
		pageHeight := w.paper.Height

		// visible image interval per page; page 1 starts below the header
		covered := 0.0
		for _, call := range w.images {
			top := -call.y
			var visibleFrom, visibleTo float64
			if call.page == 1 {
				visibleFrom = 0
				visibleTo = pageHeight - call.y
			} else {
				visibleFrom = top
				visibleTo = top + pageHeight
			}
			if visibleFrom > covered+1e-9 {
				t.Fatalf("pxHeight %v: gap before %v (covered to %v)", pxHeight, visibleFrom, covered)
			}
			covered = math.Max(covered, math.Min(visibleTo, imgHeight))
		}
		if covered < imgHeight-1e-9 {
			t.Errorf("pxHeight %v: covered %v of %v image height", pxHeight, covered, imgHeight)
		}
	}
}

func TestFacturaExportLayout(t *testing.T) {
	w := newFakeWriter()
	doc := FacturaDoc{
		FechaOrden: "2026-08-27 19:30",
		Cliente:    records.Cliente{NIT: "1234567", Nombre: "María", Apellido: "López", Direccion: "Zona 2"},
		Lineas: []FacturaLinea{
			{Descripcion: "Pepian", Cantidad: 2, Precio: decimal.NewFromInt(35), Subtotal: decimal.NewFromInt(70)},
		},
		Total: decimal.NewFromInt(70),
	}

	FacturaExporter{}.Export(w, doc)

	for _, want := range []string{
		"Restaurante Miralago, Panajachel",
		"NIT: 1234567",
		"Nombre: María López",
		"Detalle Factura:",
		"Pepian",
		"Q35.00",
		"Total de la Orden: Q 70.00",
	} {
		if !w.hasText(want) {
			t.Errorf("invoice text %q missing; got %v", want, w.texts)
		}
	}
}

func TestFacturaExportPlaceholders(t *testing.T) {
	w := newFakeWriter()
	FacturaExporter{}.Export(w, FacturaDoc{Total: decimal.Zero})

	for _, want := range []string{"Fecha y hora: No especificada", "NIT: No especificado", "Dirección: No especificada"} {
		if !w.hasText(want) {
			t.Errorf("placeholder %q missing", want)
		}
	}
}
