package web

import (
	"context"
	"encoding/base64"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/miralago/reportes-gw/pdfs"
	"github.com/miralago/reportes-gw/records"
	"github.com/miralago/reportes-gw/requests"
	"github.com/miralago/reportes-gw/responses"
	"github.com/miralago/reportes-gw/tabular"
	"github.com/miralago/reportes-gw/web/session"
)

// ReportMeta names each exportable report and the header block of its PDF
type ReportMeta struct {
	Title       string
	Description string
}

var reportMetas = map[string]ReportMeta{
	"clientes":        {"Informe de Clientes", "Este reporte muestra el total de Clientes."},
	"empleados":       {"Informe de Empleados", "Este reporte muestra el total de Empleados."},
	"usuarios":        {"Informe de Usuarios", "Este reporte muestra el total usuarios en el sistema."},
	"platillos":       {"Informe de Platillos", "Este reporte muestra el total de Platillos."},
	"ventas-mesa":     {"Informe de Ventas por Mesa", "Este reporte muestra el total de ventas por cada mesa en el sistema."},
	"ventas-mes":      {"Informe de Ventas Mensuales", "Este reporte muestra el total de ventas por mes."},
	"ventas-platillo": {"Informe de Ventas por Platillo", "Este reporte muestra el total de ventas por platillo."},
	"arqueo":          {"Arqueo de Caja", "Este reporte muestra el arqueo de caja del día."},
}

// ReportPage is the render model of every report template
type ReportPage struct {
	Username string
	Reporte  string
	Table    TableView
}

// renderReport is the shared pipeline of all report pages: fetch the working
// set, feed the engine, apply the request's table params, render. A fetch
// failure degrades to the empty table instead of an error page.
func renderReport[R any](
	p *Pages,
	w http.ResponseWriter,
	r *http.Request,
	reporte string,
	conf tabular.Config[R],
	fetch func(ctx context.Context, accessToken string) ([]R, error),
) {
	ctx := r.Context()
	user, _ := session.UserFromContext(ctx)

	rows, err := fetch(ctx, user.AccessToken)
	if err != nil {
		log.Printf("[ERROR][WEB] reporte %s: %v", reporte, err)
		rows = nil
	}

	engine, err := tabular.NewEngine(conf)
	if err != nil {
		log.Printf("[ERROR][WEB] reporte %s: %v", reporte, err)
		http.Error(w, "error interno", http.StatusInternalServerError)
		return
	}
	engine.Load(rows)
	applyTableParams(engine,
		r.URL.Query().Get("q"),
		r.URL.Query().Get("sort"),
		r.URL.Query().Get("dir"),
		requests.QueryInt(r, "page", 0),
	)

	p.render(w, "reportes/"+reporte, ReportPage{
		Username: user.Username,
		Reporte:  reporte,
		Table:    BuildTableView(reportMetas[reporte].Title, engine),
	})
}

func (p *Pages) ReporteClientes(w http.ResponseWriter, r *http.Request) {
	renderReport(p, w, r, "clientes", records.ClientesTabla(), p.Backend.ListarClientes)
}

func (p *Pages) ReporteEmpleados(w http.ResponseWriter, r *http.Request) {
	renderReport(p, w, r, "empleados", records.EmpleadosTabla(), p.Backend.ListarEmpleados)
}

// ReporteUsuarios joins usuarios against empleados, roles and estados before
// the table pipeline runs
func (p *Pages) ReporteUsuarios(w http.ResponseWriter, r *http.Request) {
	renderReport(p, w, r, "usuarios", records.UsuariosTabla(),
		func(ctx context.Context, accessToken string) ([]records.UsuarioReporte, error) {
			usuarios, err := p.Backend.ListarUsuarios(ctx, accessToken)
			if err != nil {
				return nil, err
			}
			empleados, err := p.Backend.ListarEmpleados(ctx, accessToken)
			if err != nil {
				return nil, err
			}
			roles, err := p.Backend.ListarRoles(ctx, accessToken)
			if err != nil {
				return nil, err
			}
			estados, err := p.Backend.ListarEstados(ctx, accessToken)
			if err != nil {
				return nil, err
			}
			return records.JoinUsuarios(usuarios, empleados, roles, estados), nil
		})
}

func (p *Pages) ReportePlatillos(w http.ResponseWriter, r *http.Request) {
	renderReport(p, w, r, "platillos", records.PlatillosTabla(),
		func(ctx context.Context, accessToken string) ([]records.PlatilloReporte, error) {
			platillos, err := p.Backend.ListarPlatillos(ctx, accessToken)
			if err != nil {
				return nil, err
			}
			categorias, err := p.Backend.ListarCategorias(ctx, accessToken)
			if err != nil {
				return nil, err
			}
			return records.JoinPlatillos(platillos, categorias), nil
		})
}

func (p *Pages) ReporteVentasMesa(w http.ResponseWriter, r *http.Request) {
	renderReport(p, w, r, "ventas-mesa", records.VentasMesaTabla(), p.Backend.VentasPorMesa)
}

func (p *Pages) ReporteVentasMes(w http.ResponseWriter, r *http.Request) {
	renderReport(p, w, r, "ventas-mes", records.VentasMesTabla(), p.Backend.VentasPorMes)
}

func (p *Pages) ReporteVentasPlatillo(w http.ResponseWriter, r *http.Request) {
	renderReport(p, w, r, "ventas-platillo", records.VentasPlatilloTabla(), p.Backend.VentasPorPlatillo)
}

// ExportReportePDF produces the PDF for one report from the rasterized
// capture the page posts: capture (base64 PNG), width, height. Throttled per
// session; every produced artifact is logged.
func (p *Pages) ExportReportePDF(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, _ := session.UserFromContext(ctx)
	webSessionId, _ := session.WebSessionIdFromContext(ctx)

	reporte := r.PathValue("reporte")
	meta, ok := reportMetas[reporte]
	if !ok {
		responses.WriteSimpleErrorJSON(w, http.StatusNotFound, "reporte desconocido")
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
	exporter := pdfs.ReportExporter{Title: meta.Title, Description: meta.Description}
	exporter.Export(writer, capture, time.Now())

	pdfBytes, err := writer.ProduceBytes()
	if err != nil {
		log.Printf("[ERROR][WEB] pdf %s: %v", reporte, err)
		responses.WriteSimpleErrorJSON(w, http.StatusInternalServerError, "error interno")
		return
	}

	if entry, logErr := p.ExportLog.Record(ctx, reporte, user.Username); logErr != nil {
		log.Printf("[ERROR][WEB] export log %s: %v", reporte, logErr)
	} else {
		log.Printf("[INFO][WEB] export %s by %s -> %s", reporte, user.Username, entry.ID)
	}

	responses.WritePDFBytesWithFilename(w, "reporte_"+reporte+".pdf", pdfBytes)
}

var errCaptureInvalid = errors.New("captura inválida")

func captureFromForm(r *http.Request) (pdfs.Capture, error) {
	png, err := base64.StdEncoding.DecodeString(r.PostFormValue("capture"))
	if err != nil || len(png) == 0 {
		return pdfs.Capture{}, errCaptureInvalid
	}
	width := requests.FormFloat(r, "width", 0)
	height := requests.FormFloat(r, "height", 0)
	if width <= 0 || height <= 0 {
		return pdfs.Capture{}, errCaptureInvalid
	}
	return pdfs.Capture{PNG: png, Width: width, Height: height}, nil
}
