// Package pdfs defines the document writer contract the report and invoice
// exporters draw against, and the layout logic itself. The concrete writer is
// an external collaborator; exporters only assume the interface below.
package pdfs

import "io"

type PaperSize struct {
	Name   string
	Width  float64 // in mm
	Height float64 // in mm
}

var (
	A4Size     = PaperSize{Name: "A4", Width: 210, Height: 297}
	LetterSize = PaperSize{Name: "Letter", Width: 215.9, Height: 279.4}
)

// Writer — minimal, stream-style, append-only PDF writer. No page
// navigation. Coordinates are mm from the top-left corner of the current
// page; drawing outside the page clips silently.
type Writer interface {
	PaperSize() PaperSize
	Orientation() string

	AddBlankPage()

	SetFont(family string, style string, size float64)
	SetTextColor(r uint8, g uint8, b uint8)
	Text(x float64, y float64, text string)
	TextWidth(text string) float64

	SetLineWidth(width float64)
	Line(x1 float64, y1 float64, x2 float64, y2 float64)

	// Image draws a PNG scaled to width x height at (x, y). A negative y
	// shifts the image up so a lower slice of it lands on the page.
	Image(png []byte, x float64, y float64, width float64, height float64)

	WriteTo(w io.Writer) (int64, error)
	WriteToFile(filepath string) error
	ProduceBytes() ([]byte, error)
}
