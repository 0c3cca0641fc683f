package pdfs

import "time"

// Capture is a rasterized snapshot of a report region, as delivered by the
// external rasterizer. Width and Height are the intrinsic pixel dimensions;
// the exporter scales to the page's content width keeping the aspect ratio.
type Capture struct {
	PNG    []byte
	Width  float64
	Height float64
}

// Report layout constants, in mm
const (
	marginLeft   = 14
	marginTop    = 20
	marginRight  = 14
	headerHeight = 30 // title + description + separator + date line
	pageIndexX   = 180
)

var headerOrange = [3]uint8{255, 165, 0}

// ReportExporter lays out one report PDF: a header block on the first page
// (title, description, separator, generation date, page index) followed by
// the captured region, sliced vertically across as many pages as it needs.
type ReportExporter struct {
	Title       string
	Description string
}

// Export draws the report into w. Every vertical stripe of the capture lands
// on some page; content taller than one page continues on the next instead
// of being cut off.
func (e ReportExporter) Export(w Writer, capture Capture, generatedAt time.Time) {
	paper := w.PaperSize()
	imgWidth := paper.Width - marginLeft - marginRight
	imgHeight := capture.Height * imgWidth / capture.Width
	pageHeight := paper.Height

	w.SetTextColor(headerOrange[0], headerOrange[1], headerOrange[2])
	w.SetFont("helvetica", "bold", 18)
	w.Text(marginLeft, marginTop, e.Title)

	w.SetFont("helvetica", "normal", 12)
	w.Text(marginLeft, marginTop+10, e.Description)

	w.SetLineWidth(0.5)
	w.Line(marginLeft, marginTop+12, paper.Width-marginLeft-marginRight, marginTop+12)

	w.SetFont("helvetica", "normal", 10)
	w.Text(marginLeft, marginTop+25, "Fecha de generación: "+generatedAt.Format("2/1/2006"))
	w.Text(pageIndexX, marginTop+25, "Página: 1")

	w.Image(capture.PNG, marginLeft, marginTop+headerHeight, imgWidth, imgHeight)

	// continuation pages: shift the same image up one page height at a time
	// until the remaining stripe fits
	heightLeft := imgHeight - (pageHeight - marginTop - headerHeight)
	for heightLeft >= 0 {
		position := heightLeft - imgHeight
		w.AddBlankPage()
		w.Image(capture.PNG, marginLeft, position, imgWidth, imgHeight)
		heightLeft -= pageHeight
	}
}

// ExportCapture slices a capture across pages without a header block, edge
// to edge except for a small side margin. Same coverage rule as the report
// exporter.
func ExportCapture(w Writer, capture Capture) {
	const sideMargin = 10
	paper := w.PaperSize()
	imgWidth := paper.Width - 2*sideMargin
	imgHeight := capture.Height * imgWidth / capture.Width
	pageHeight := paper.Height

	w.Image(capture.PNG, sideMargin, 0, imgWidth, imgHeight)

	heightLeft := imgHeight - pageHeight
	for heightLeft >= 0 {
		position := heightLeft - imgHeight
		w.AddBlankPage()
		w.Image(capture.PNG, sideMargin, position, imgWidth, imgHeight)
		heightLeft -= pageHeight
	}
}
