// Package records defines the typed row schemas of every report the gateway
// renders, replacing the schema-free string-keyed records the backend wire
// format suggests. JSON tags match the backend field names exactly.
package records

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/miralago/reportes-gw/nullable"
)

type Cliente struct {
	ID        int    `json:"id"`
	NIT       string `json:"nit_cliente"`
	Nombre    string `json:"nombre"`
	Apellido  string `json:"apellido"`
	Direccion string `json:"direccion"`
}

type Empleado struct {
	ID              int             `json:"id"`
	PrimerNombre    string          `json:"primer_nombre"`
	SegundoNombre   nullable.String `json:"segundo_nombre"`
	PrimerApellido  string          `json:"primer_apellido"`
	SegundoApellido nullable.String `json:"segundo_apellido"`
	Telefono        string          `json:"telefono"`
	Email           string          `json:"email"`
}

type Rol struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

type Estado struct {
	ID          int    `json:"id"`
	Descripcion string `json:"descripcion"`
}

type Usuario struct {
	IDUsuario     int    `json:"id_usuario"`
	Username      string `json:"username"`
	EmpleadoID    int    `json:"empleado_id"`
	RolID         int    `json:"rol_id"`
	EstadoID      int    `json:"estado_id"`
	FechaCreacion string `json:"fecha_creacion"`
}

// UsuarioReporte is the joined row the user report renders: usuario +
// empleado + rol + estado resolved by id
type UsuarioReporte struct {
	IDUsuario     int
	Empleado      string
	Apellido      string
	Rol           string
	Estado        string
	Username      string
	FechaCreacion string
}

const noDisponible = "No disponible"

// JoinUsuarios resolves usuario foreign keys against the empleado/rol/estado
// lists. Missing references render as "No disponible" rather than dropping
// the row.
func JoinUsuarios(usuarios []Usuario, empleados []Empleado, roles []Rol, estados []Estado) []UsuarioReporte {
	empleadosByID := make(map[int]Empleado, len(empleados))
	for _, e := range empleados {
		empleadosByID[e.ID] = e
	}
	rolesByID := make(map[int]Rol, len(roles))
	for _, r := range roles {
		rolesByID[r.ID] = r
	}
	estadosByID := make(map[int]Estado, len(estados))
	for _, e := range estados {
		estadosByID[e.ID] = e
	}

	out := make([]UsuarioReporte, 0, len(usuarios))
	for _, u := range usuarios {
		row := UsuarioReporte{
			IDUsuario:     u.IDUsuario,
			Empleado:      noDisponible,
			Apellido:      noDisponible,
			Rol:           noDisponible,
			Estado:        noDisponible,
			Username:      u.Username,
			FechaCreacion: u.FechaCreacion,
		}
		if e, ok := empleadosByID[u.EmpleadoID]; ok {
			row.Empleado = e.PrimerNombre
			row.Apellido = e.PrimerApellido
		}
		if r, ok := rolesByID[u.RolID]; ok {
			row.Rol = r.Nombre
		}
		if e, ok := estadosByID[u.EstadoID]; ok {
			row.Estado = e.Descripcion
		}
		out = append(out, row)
	}
	return out
}

type Categoria struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

type Platillo struct {
	ID          int             `json:"id"`
	Nombre      string          `json:"nombre"`
	Descripcion nullable.String `json:"descripcion"`
	CategoriaID int             `json:"categoria_id"`
	Precio      decimal.Decimal `json:"precio"`
}

// PlatilloReporte carries the resolved categoria name for rendering
type PlatilloReporte struct {
	ID        int
	Nombre    string
	Categoria string
	Precio    decimal.Decimal
}

func JoinPlatillos(platillos []Platillo, categorias []Categoria) []PlatilloReporte {
	categoriasByID := make(map[int]Categoria, len(categorias))
	for _, c := range categorias {
		categoriasByID[c.ID] = c
	}
	out := make([]PlatilloReporte, 0, len(platillos))
	for _, p := range platillos {
		row := PlatilloReporte{
			ID:        p.ID,
			Nombre:    p.Nombre,
			Categoria: noDisponible,
			Precio:    p.Precio,
		}
		if c, ok := categoriasByID[p.CategoriaID]; ok {
			row.Categoria = c.Nombre
		}
		out = append(out, row)
	}
	return out
}

// Sales aggregates

type VentaMesa struct {
	NumeroMesa  int   `json:"numero_mesa"`
	TotalVentas Monto `json:"total_ventas"`
}

type VentaMes struct {
	Anio        int   `json:"anio"`
	Mes         int   `json:"mes"`
	NumeroMesa  int   `json:"numero_mesa"`
	TotalVentas Monto `json:"total_ventas"`
}

type VentaPlatillo struct {
	NombrePlatillo  string `json:"nombre_platillo"`
	CantidadVendida int64  `json:"cantidad_vendida"`
	TotalVentas     Monto  `json:"total_ventas"`
}

// Billing domain

type OrdenItem struct {
	Nombre      string          `json:"nombre"`
	Descripcion nullable.String `json:"descripcion"`
	Cantidad    int64           `json:"cantidad"`
	Subtotal    Monto           `json:"subtotal"`
}

// DisplayNombre falls back the way the invoice body does: nombre, then
// descripcion, then a placeholder
func (i OrdenItem) DisplayNombre() string {
	if i.Nombre != "" {
		return i.Nombre
	}
	if !i.Descripcion.IsNil() {
		return i.Descripcion.ForceValue()
	}
	return "Item sin nombre"
}

type Orden struct {
	OrdenID    int64       `json:"ordenId"`
	MesaID     int64       `json:"mesaId"`
	FechaOrden time.Time   `json:"fechaOrden"`
	Items      []OrdenItem `json:"items"`
}

// Cash register reconciliation (arqueo)

type ArqueoItem struct {
	PlatilloID     int64  `json:"platilloId"`
	NombrePlatillo string `json:"nombrePlatillo"`
	Cantidad       int64  `json:"cantidad"`
}

type ArqueoOrden struct {
	OrdenID int64        `json:"ordenId"`
	Items   []ArqueoItem `json:"items"`
	Total   Monto        `json:"total"`
}

type Arqueo struct {
	Fecha        string        `json:"fecha"`
	TotalVentas  Monto         `json:"totalVentas"`
	TotalOrdenes int           `json:"totalOrdenes"`
	Ordenes      []ArqueoOrden `json:"ordenes"`
}
