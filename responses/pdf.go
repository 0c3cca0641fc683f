package responses

import (
	"fmt"
	"log"
	"net/http"

	"github.com/miralago/reportes-gw/rw"
)

func WritePDFBytesWithFilename(w http.ResponseWriter, filename string, PDFBytes []byte) {
	WritePDFResponseHeaders(w, filename)
	cw := rw.NewCountWriter(w)
	_, err := cw.Write(PDFBytes)
	if err != nil {
		log.Printf("[ERROR] writing PDF to response: %v", err)
		return
	}
	log.Printf("[INFO] pdf %q sent (%d bytes)", filename, cw.BytesWritten())
}

// WritePDFResponseHeaders write HTTP response headers for PDF response. i.e. headers are frozen
func WritePDFResponseHeaders(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	w.WriteHeader(http.StatusOK) // Response Header Sent & Frozen
}
