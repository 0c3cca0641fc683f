package web

import (
	"context"
	"encoding/json/v2"
	"log"
	"net/http"
	"time"

	"github.com/miralago/reportes-gw/pdfs"
	"github.com/miralago/reportes-gw/records"
	"github.com/miralago/reportes-gw/responses"
	"github.com/miralago/reportes-gw/web/session"
)

const arqueoCacheTTL = 60 * time.Second

// ArqueoPage is the render model of the cash reconciliation view
type ArqueoPage struct {
	Username string
	Fecha    string
	Arqueo   *records.Arqueo
	Error    string
}

// Arqueo renders the reconciliation for the selected date. Overlapping
// fetches for quickly-changed dates go through the sequencer: a stale slow
// response is discarded instead of overwriting the newer one.
func (p *Pages) Arqueo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, _ := session.UserFromContext(ctx)

	fecha := r.URL.Query().Get("fecha")
	if fecha == "" {
		fecha = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", fecha); err != nil {
		p.render(w, "arqueo", ArqueoPage{Username: user.Username, Fecha: fecha, Error: "fecha inválida"})
		return
	}

	arqueo, err := p.fetchArqueo(ctx, user.AccessToken, fecha)
	page := ArqueoPage{Username: user.Username, Fecha: fecha, Arqueo: arqueo}
	if err != nil {
		log.Printf("[ERROR][WEB] arqueo %s: %v", fecha, err)
		page.Arqueo = nil
	}
	p.render(w, "arqueo", page)
}

// fetchArqueo reads through the short-lived KVDB cache; misses hit the
// backend under the latest-request-wins guard
func (p *Pages) fetchArqueo(ctx context.Context, accessToken string, fecha string) (*records.Arqueo, error) {
	cacheKey := p.AppName + "_arqueo:" + fecha
	if cached, found, err := p.KVDB.Get(ctx, cacheKey); err == nil && found {
		var arqueo records.Arqueo
		if err = json.Unmarshal([]byte(cached), &arqueo); err == nil {
			return &arqueo, nil
		}
	}

	fetchCtx, commit := p.arqueoSeq.Begin(ctx)
	arqueo, err := p.Backend.ArqueoCaja(fetchCtx, accessToken, fecha)
	if err != nil {
		return nil, err
	}
	if !commit() {
		// a newer date was requested while this fetch ran; drop the result
		return nil, context.Canceled
	}

	if encoded, err := json.Marshal(arqueo); err == nil {
		if err = p.KVDB.Set(ctx, cacheKey, string(encoded), arqueoCacheTTL); err != nil {
			log.Printf("[WARN][WEB] arqueo cache: %v", err)
		}
	}
	return arqueo, nil
}

// ExportArqueoPDF produces arqueo_caja_<fecha>.pdf from the page capture
func (p *Pages) ExportArqueoPDF(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, _ := session.UserFromContext(ctx)
	webSessionId, _ := session.WebSessionIdFromContext(ctx)

	fecha := r.PostFormValue("fecha")
	if _, err := time.Parse("2006-01-02", fecha); err != nil {
		responses.WriteSimpleErrorJSON(w, http.StatusBadRequest, "fecha inválida")
		return
	}

	if !p.Throttle.Allow(ThrottleGroupPDF, webSessionId, time.Now()) {
		responses.WriteSimpleErrorJSON(w, http.StatusTooManyRequests, "demasiadas exportaciones, intente de nuevo en un momento")
		return
	}

	capture, err := captureFromForm(r)
	if err != nil {
		responses.WriteSimpleErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	if p.NewPDFWriter == nil {
		responses.WriteSimpleErrorJSON(w, http.StatusServiceUnavailable, "exportación PDF no disponible")
		return
	}
	writer := p.NewPDFWriter()
	pdfs.ExportCapture(writer, capture)

	pdfBytes, err := writer.ProduceBytes()
	if err != nil {
		log.Printf("[ERROR][WEB] arqueo pdf: %v", err)
		responses.WriteSimpleErrorJSON(w, http.StatusInternalServerError, "error interno")
		return
	}

	if _, logErr := p.ExportLog.Record(ctx, "arqueo", user.Username); logErr != nil {
		log.Printf("[ERROR][WEB] export log arqueo: %v", logErr)
	}

	responses.WritePDFBytesWithFilename(w, "arqueo_caja_"+fecha+".pdf", pdfBytes)
}
