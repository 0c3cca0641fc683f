// Package backend is the REST client for the restaurant backend API, the
// single upstream every report page reads from. All failures convert to the
// typed errors in errors.go at this layer; handlers never see raw HTTP.
package backend

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"fmt"
	"log"
	"net/http"

	"github.com/miralago/reportes-gw/records"
)

type Client struct {
	*http.Client // [Embedded]
	Conf         *Conf
}

// RequestJSON sends a request and returns the response.
// The caller is responsible for closing response.Body.
func (c *Client) RequestJSON(ctx context.Context, accessToken string, method string, endpoint string, body []byte) (*http.Response, error) {
	upstrURL := c.Conf.Host + endpoint
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	upstrReq, err := http.NewRequestWithContext(ctx, method, upstrURL, reader)
	if err != nil {
		return nil, err
	}

	upstrReq.Header.Set("Client-Id", c.Conf.ClientID)
	if accessToken != "" {
		upstrReq.Header.Set("Authorization", "Bearer "+accessToken)
	}
	upstrReq.Header.Set("Content-Type", "application/json")
	upstrReq.Header.Set("Accept", "application/json")

	return c.Do(upstrReq)
}

// getJSON fetches endpoint and decodes the JSON body into T. Every failure
// mode becomes a FetchError.
func getJSON[T any](ctx context.Context, c *Client, accessToken string, endpoint string) (T, error) {
	var out T
	upstrRes, err := c.RequestJSON(ctx, accessToken, http.MethodGet, endpoint, nil)
	if err != nil {
		return out, &FetchError{Endpoint: endpoint, Err: err}
	}
	defer func() {
		if closeErr := upstrRes.Body.Close(); closeErr != nil {
			log.Printf("[WARN] %v [BACKEND]", closeErr)
		}
	}()
	if upstrRes.StatusCode != http.StatusOK {
		return out, &FetchError{Endpoint: endpoint, Status: upstrRes.StatusCode}
	}
	if err = json.UnmarshalRead(upstrRes.Body, &out); err != nil {
		return out, &FetchError{Endpoint: endpoint, Err: err}
	}
	return out, nil
}

// Read endpoints. accessToken is the backend token held in the session.

func (c *Client) ListarClientes(ctx context.Context, accessToken string) ([]records.Cliente, error) {
	return getJSON[[]records.Cliente](ctx, c, accessToken, "/cliente/listar")
}

func (c *Client) ListarEmpleados(ctx context.Context, accessToken string) ([]records.Empleado, error) {
	return getJSON[[]records.Empleado](ctx, c, accessToken, "/obtenerlistapersonas")
}

func (c *Client) ListarRoles(ctx context.Context, accessToken string) ([]records.Rol, error) {
	return getJSON[[]records.Rol](ctx, c, accessToken, "/obtenerrol")
}

func (c *Client) ListarEstados(ctx context.Context, accessToken string) ([]records.Estado, error) {
	return getJSON[[]records.Estado](ctx, c, accessToken, "/obtenerestado")
}

func (c *Client) ListarUsuarios(ctx context.Context, accessToken string) ([]records.Usuario, error) {
	return getJSON[[]records.Usuario](ctx, c, accessToken, "/obteneruser")
}

func (c *Client) ListarPlatillos(ctx context.Context, accessToken string) ([]records.Platillo, error) {
	return getJSON[[]records.Platillo](ctx, c, accessToken, "/platillos/listar")
}

func (c *Client) ListarCategorias(ctx context.Context, accessToken string) ([]records.Categoria, error) {
	return getJSON[[]records.Categoria](ctx, c, accessToken, "/categoria/listar")
}

// OrdenesEntregadas lists the delivered orders of one waiter, the input of
// the billing page
func (c *Client) OrdenesEntregadas(ctx context.Context, accessToken string, usuarioID int) ([]records.Orden, error) {
	return getJSON[[]records.Orden](ctx, c, accessToken, fmt.Sprintf("/orden/ordenes-entregados/%d", usuarioID))
}

// The per-table and per-month sales reports read the same aggregate
// endpoint; the monthly rows additionally carry anio/mes.

func (c *Client) VentasPorMesa(ctx context.Context, accessToken string) ([]records.VentaMesa, error) {
	return getJSON[[]records.VentaMesa](ctx, c, accessToken, "/reporte/ventas-por-mesa")
}

func (c *Client) VentasPorMes(ctx context.Context, accessToken string) ([]records.VentaMes, error) {
	return getJSON[[]records.VentaMes](ctx, c, accessToken, "/reporte/ventas-por-mesa")
}

func (c *Client) VentasPorPlatillo(ctx context.Context, accessToken string) ([]records.VentaPlatillo, error) {
	return getJSON[[]records.VentaPlatillo](ctx, c, accessToken, "/reporte/ventas-por-platillo")
}

func (c *Client) ArqueoCaja(ctx context.Context, accessToken string, fecha string) (*records.Arqueo, error) {
	arqueo, err := getJSON[records.Arqueo](ctx, c, accessToken, "/caja/arqueo-caja/"+fecha)
	if err != nil {
		return nil, err
	}
	return &arqueo, nil
}

// GuardarCliente creates a new client. A 409 from the backend means the NIT
// is already taken and surfaces as a ConflictError with the user-facing
// message.
func (c *Client) GuardarCliente(ctx context.Context, accessToken string, cliente records.Cliente) error {
	const endpoint = "/cliente/guardar"
	body, err := json.Marshal(cliente)
	if err != nil {
		return err
	}
	upstrRes, err := c.RequestJSON(ctx, accessToken, http.MethodPost, endpoint, body)
	if err != nil {
		return &FetchError{Endpoint: endpoint, Err: err}
	}
	defer func() {
		if closeErr := upstrRes.Body.Close(); closeErr != nil {
			log.Printf("[WARN] %v [BACKEND]", closeErr)
		}
	}()
	switch {
	case upstrRes.StatusCode == http.StatusConflict:
		return &ConflictError{Message: "Ya existe un cliente con este NIT"}
	case upstrRes.StatusCode >= 300:
		return &FetchError{Endpoint: endpoint, Status: upstrRes.StatusCode}
	}
	return nil
}

type facturaRequest struct {
	ClienteID int64 `json:"cliente_id"`
	OrdenID   int64 `json:"orden_id"`
}

type facturaResponse struct {
	ID int64 `json:"id"`
}

// CrearFactura creates the invoice for (cliente, orden). Success means the
// backend answered with the generated id; a 2xx without an id is still a
// failure.
func (c *Client) CrearFactura(ctx context.Context, accessToken string, clienteID, ordenID int64) (int64, error) {
	const endpoint = "/factura/guardar"
	body, err := json.Marshal(facturaRequest{ClienteID: clienteID, OrdenID: ordenID})
	if err != nil {
		return 0, err
	}
	upstrRes, err := c.RequestJSON(ctx, accessToken, http.MethodPost, endpoint, body)
	if err != nil {
		return 0, &InvoiceCreationError{Reason: err.Error()}
	}
	defer func() {
		if closeErr := upstrRes.Body.Close(); closeErr != nil {
			log.Printf("[WARN] %v [BACKEND]", closeErr)
		}
	}()
	if upstrRes.StatusCode >= 300 {
		return 0, &InvoiceCreationError{Reason: fmt.Sprintf("HTTP %d", upstrRes.StatusCode)}
	}
	var res facturaResponse
	if err = json.UnmarshalRead(upstrRes.Body, &res); err != nil {
		return 0, &InvoiceCreationError{Reason: err.Error()}
	}
	if res.ID == 0 {
		return 0, &InvoiceCreationError{Reason: "respuesta sin id generado"}
	}
	return res.ID, nil
}
