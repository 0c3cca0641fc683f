package web

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/miralago/reportes-gw/backend"
	"github.com/miralago/reportes-gw/billing"
	"github.com/miralago/reportes-gw/locks/keyonlylocks"
	"github.com/miralago/reportes-gw/pdfs"
	"github.com/miralago/reportes-gw/records"
	"github.com/miralago/reportes-gw/responses"
	"github.com/miralago/reportes-gw/web/session"
)

// FacturaPage is the render model of the billing view: the waiter's
// delivered orders plus the client picker
type FacturaPage struct {
	Username  string
	Ordenes   []OrdenView
	Clientes  []records.Cliente
	BuscarQ   string
	Mensaje   string
	MensajeOK bool
}

type OrdenView struct {
	records.Orden
	Total string
}

// Facturacion lists the logged-in waiter's delivered orders and the
// filtered client list
func (p *Pages) Facturacion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, _ := session.UserFromContext(ctx)

	ordenes, err := p.Backend.OrdenesEntregadas(ctx, user.AccessToken, user.IDUsuario)
	if err != nil {
		log.Printf("[ERROR][WEB] ordenes entregadas: %v", err)
		ordenes = nil
	}
	clientes, err := p.Backend.ListarClientes(ctx, user.AccessToken)
	if err != nil {
		log.Printf("[ERROR][WEB] listar clientes: %v", err)
		clientes = nil
	}

	buscarQ := r.URL.Query().Get("buscar")

	views := make([]OrdenView, 0, len(ordenes))
	for _, o := range ordenes {
		views = append(views, OrdenView{Orden: o, Total: billing.Total(o).StringFixed(2)})
	}

	p.render(w, "facturacion", FacturaPage{
		Username: user.Username,
		Ordenes:  views,
		Clientes: billing.BuscarClientes(clientes, buscarQ),
		BuscarQ:  buscarQ,
		Mensaje:  r.URL.Query().Get("mensaje"),
	})
}

// GuardarCliente validates and creates a new client. Validation failures and
// the duplicate-NIT conflict come back as user-readable messages.
func (p *Pages) GuardarCliente(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, _ := session.UserFromContext(ctx)

	cliente := records.Cliente{
		NIT:       r.PostFormValue("nit_cliente"),
		Nombre:    r.PostFormValue("nombre"),
		Apellido:  r.PostFormValue("apellido"),
		Direccion: r.PostFormValue("direccion"),
	}

	if err := billing.ValidateCliente(cliente); err != nil {
		responses.WriteSimpleErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := p.Backend.GuardarCliente(ctx, user.AccessToken, cliente); err != nil {
		var conflict *backend.ConflictError
		if errors.As(err, &conflict) {
			responses.WriteSimpleErrorJSON(w, http.StatusConflict, conflict.Message)
			return
		}
		log.Printf("[ERROR][WEB] guardar cliente: %v", err)
		responses.WriteSimpleErrorJSON(w, http.StatusBadGateway, "Error al crear el cliente")
		return
	}

	responses.EncodeWriteJSON(w, http.StatusCreated, responses.Message{
		Type:    "success",
		Message: "El cliente se ha registrado exitosamente",
	})
}

// CrearFactura submits the invoice. Creating it is the whole operation;
// fetching the printable PDF is the separate FacturaPDF step the client
// chains afterwards.
func (p *Pages) CrearFactura(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, _ := session.UserFromContext(ctx)

	clienteID, _ := strconv.ParseInt(r.PostFormValue("cliente_id"), 10, 64)
	ordenID, _ := strconv.ParseInt(r.PostFormValue("orden_id"), 10, 64)

	lockKeys := []string{"factura:orden:" + strconv.FormatInt(ordenID, 10)}
	acquired, ok := keyonlylocks.AcquireLocks(&p.submitLocks, lockKeys)
	if !ok {
		responses.WriteSimpleErrorJSON(w, http.StatusConflict, "La factura de esta orden ya se está generando")
		return
	}
	defer keyonlylocks.ReleaseLocks(&p.submitLocks, acquired)

	composer := billing.NewComposer(facturaCreator{p.Backend, user.AccessToken})
	facturaID, err := composer.SubmitFactura(ctx, clienteID, ordenID)
	if err != nil {
		var creation *backend.InvoiceCreationError
		if errors.As(err, &creation) {
			log.Printf("[ERROR][WEB] crear factura: %v", err)
			responses.WriteSimpleErrorJSON(w, http.StatusBadGateway, "Hubo un problema al generar la factura")
			return
		}
		responses.WriteSimpleErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	responses.EncodeWriteJSON(w, http.StatusCreated, map[string]any{
		"id":      facturaID,
		"mensaje": "Factura generada exitosamente con ID:" + strconv.FormatInt(facturaID, 10),
	})
}

// facturaCreator binds the session's access token to the composer's
// backend dependency
type facturaCreator struct {
	client *backend.Client
	token  string
}

func (f facturaCreator) CrearFactura(ctx context.Context, clienteID, ordenID int64) (int64, error) {
	return f.client.CrearFactura(ctx, f.token, clienteID, ordenID)
}

// FacturaPDF renders the printable invoice for one delivered order
func (p *Pages) FacturaPDF(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, _ := session.UserFromContext(ctx)

	ordenID, _ := strconv.ParseInt(r.PathValue("ordenId"), 10, 64)
	clienteID, _ := strconv.ParseInt(r.URL.Query().Get("cliente_id"), 10, 64)

	ordenes, err := p.Backend.OrdenesEntregadas(ctx, user.AccessToken, user.IDUsuario)
	if err != nil {
		log.Printf("[ERROR][WEB] ordenes entregadas: %v", err)
		responses.WriteSimpleErrorJSON(w, http.StatusBadGateway, "error consultando la orden")
		return
	}
	var orden *records.Orden
	for i := range ordenes {
		if ordenes[i].OrdenID == ordenID {
			orden = &ordenes[i]
			break
		}
	}
	if orden == nil {
		responses.WriteSimpleErrorJSON(w, http.StatusNotFound, "orden no encontrada")
		return
	}

	var cliente records.Cliente
	clientes, err := p.Backend.ListarClientes(ctx, user.AccessToken)
	if err != nil {
		log.Printf("[ERROR][WEB] listar clientes: %v", err)
	}
	for _, c := range clientes {
		if int64(c.ID) == clienteID {
			cliente = c
			break
		}
	}

	if p.NewPDFWriter == nil {
		responses.WriteSimpleErrorJSON(w, http.StatusServiceUnavailable, "exportación PDF no disponible")
		return
	}
	writer := p.NewPDFWriter()

	lineas := make([]pdfs.FacturaLinea, 0, len(orden.Items))
	for _, li := range billing.LineItems(*orden) {
		lineas = append(lineas, pdfs.FacturaLinea{
			Descripcion: li.Nombre,
			Cantidad:    li.Cantidad,
			Precio:      li.PrecioUnitario,
			Subtotal:    li.Subtotal,
		})
	}
	pdfs.FacturaExporter{}.Export(writer, pdfs.FacturaDoc{
		FechaOrden: orden.FechaOrden.Format("02/01/2006 15:04"),
		Cliente:    cliente,
		Lineas:     lineas,
		Total:      billing.Total(*orden),
	})

	pdfBytes, err := writer.ProduceBytes()
	if err != nil {
		log.Printf("[ERROR][WEB] factura pdf: %v", err)
		responses.WriteSimpleErrorJSON(w, http.StatusInternalServerError, "error interno")
		return
	}

	if _, logErr := p.ExportLog.Record(ctx, "factura", user.Username); logErr != nil {
		log.Printf("[ERROR][WEB] export log factura: %v", logErr)
	}

	responses.WritePDFBytesWithFilename(w, "Factura_Orden.pdf", pdfBytes)
}
