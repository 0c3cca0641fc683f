package web

import (
	"net/http"

	"github.com/miralago/reportes-gw/routing"
)

// BuildRouter mounts every page under the middleware chain: panic recovery
// outermost, then access logging, then the session check for everything but
// the login endpoints.
func BuildRouter(p *Pages) *routing.BaseRouter {
	router := routing.NewBaseRouter()
	recoverW := routing.WrapperFunc(routing.RecoverWrapper)
	accessLog := routing.WrapperFunc(routing.AccessLogWrapper)

	router.HandleFunc("GET /login", p.LoginPage, recoverW, accessLog)
	router.HandleFunc("POST /login", p.LoginSubmit, recoverW, accessLog)
	router.HandleFunc("GET /logout", p.Logout, recoverW, accessLog)

	router.Group("/reportes/", func(rep *routing.RouteGroup) {
		rep.HandleFunc("GET clientes", p.RequireSession(p.ReporteClientes))
		rep.HandleFunc("GET empleados", p.RequireSession(p.ReporteEmpleados))
		rep.HandleFunc("GET usuarios", p.RequireSession(p.ReporteUsuarios))
		rep.HandleFunc("GET platillos", p.RequireSession(p.ReportePlatillos))
		rep.HandleFunc("GET ventas-mesa", p.RequireSession(p.ReporteVentasMesa))
		rep.HandleFunc("GET ventas-mes", p.RequireSession(p.ReporteVentasMes))
		rep.HandleFunc("GET ventas-platillo", p.RequireSession(p.ReporteVentasPlatillo))
		rep.HandleFunc("POST {reporte}/pdf", p.RequireSession(p.ExportReportePDF))
	}, recoverW, accessLog)

	router.Group("/facturacion/", func(fac *routing.RouteGroup) {
		fac.HandleFunc("GET {$}", p.RequireSession(p.Facturacion))
		fac.HandleFunc("POST clientes", p.RequireSession(p.GuardarCliente))
		fac.HandleFunc("POST factura", p.RequireSession(p.CrearFactura))
		fac.HandleFunc("GET orden/{ordenId}/pdf", p.RequireSession(p.FacturaPDF))
	}, recoverW, accessLog)

	router.Group("/caja/", func(caja *routing.RouteGroup) {
		caja.HandleFunc("GET arqueo", p.RequireSession(p.Arqueo))
		caja.HandleFunc("POST arqueo/pdf", p.RequireSession(p.ExportArqueoPDF))
	}, recoverW, accessLog)

	router.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/reportes/clientes", http.StatusSeeOther)
	}, recoverW, accessLog)

	return router
}
