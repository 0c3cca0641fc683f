package records

import (
	"strconv"

	"github.com/miralago/reportes-gw/tabular"
)

// One tabular.Config per report page. Column keys double as the sort keys
// the table headers submit; page sizes match what each report shows.

func ClientesTabla() tabular.Config[Cliente] {
	return tabular.Config[Cliente]{
		ItemsPerPage: 8,
		Columns: []tabular.Column[Cliente]{
			{Key: "id", Title: "ID", Value: func(c Cliente) any { return c.ID }},
			{Key: "nit_cliente", Title: "NIT", Value: func(c Cliente) any { return c.NIT }, Searchable: true},
			{Key: "nombre", Title: "Nombre", Value: func(c Cliente) any { return c.Nombre }, Searchable: true},
			{Key: "apellido", Title: "Apellido", Value: func(c Cliente) any { return c.Apellido }, Searchable: true},
			{Key: "direccion", Title: "Dirección", Value: func(c Cliente) any { return c.Direccion }},
		},
	}
}

func EmpleadosTabla() tabular.Config[Empleado] {
	return tabular.Config[Empleado]{
		ItemsPerPage: 8,
		Columns: []tabular.Column[Empleado]{
			{Key: "id", Title: "ID", Value: func(e Empleado) any { return e.ID }},
			{Key: "primer_nombre", Title: "Primer Nombre", Value: func(e Empleado) any { return e.PrimerNombre }, Searchable: true},
			{Key: "segundo_nombre", Title: "Segundo Nombre", Value: func(e Empleado) any { return e.SegundoNombre.ForceValue() }},
			{Key: "primer_apellido", Title: "Primer Apellido", Value: func(e Empleado) any { return e.PrimerApellido }, Searchable: true},
			{Key: "segundo_apellido", Title: "Segundo Apellido", Value: func(e Empleado) any { return e.SegundoApellido.ForceValue() }},
			{Key: "telefono", Title: "Teléfono", Value: func(e Empleado) any { return e.Telefono }},
			{Key: "email", Title: "Email", Value: func(e Empleado) any { return e.Email }, Searchable: true},
		},
	}
}

func UsuariosTabla() tabular.Config[UsuarioReporte] {
	return tabular.Config[UsuarioReporte]{
		ItemsPerPage: 8,
		Columns: []tabular.Column[UsuarioReporte]{
			{Key: "id_usuario", Title: "ID", Value: func(u UsuarioReporte) any { return u.IDUsuario }},
			{Key: "empleado", Title: "Empleado", Value: func(u UsuarioReporte) any { return u.Empleado }, Searchable: true},
			{Key: "apellido", Title: "Apellido", Value: func(u UsuarioReporte) any { return u.Apellido }, Searchable: true},
			{Key: "rol", Title: "Rol", Value: func(u UsuarioReporte) any { return u.Rol }, Searchable: true},
			{Key: "estado", Title: "Estado", Value: func(u UsuarioReporte) any { return u.Estado }},
			{Key: "username", Title: "Username", Value: func(u UsuarioReporte) any { return u.Username }, Searchable: true},
			{Key: "fecha_creacion", Title: "Fecha de Creación", Value: func(u UsuarioReporte) any { return u.FechaCreacion }},
		},
	}
}

func PlatillosTabla() tabular.Config[PlatilloReporte] {
	return tabular.Config[PlatilloReporte]{
		ItemsPerPage: 8,
		Columns: []tabular.Column[PlatilloReporte]{
			{Key: "id", Title: "ID", Value: func(p PlatilloReporte) any { return p.ID }},
			{Key: "nombre", Title: "Nombre", Value: func(p PlatilloReporte) any { return p.Nombre }, Searchable: true},
			{Key: "categoria", Title: "Categoría", Value: func(p PlatilloReporte) any { return p.Categoria }, Searchable: true},
			{Key: "precio", Title: "Precio", Value: func(p PlatilloReporte) any { return p.Precio }},
		},
	}
}

func VentasMesaTabla() tabular.Config[VentaMesa] {
	return tabular.Config[VentaMesa]{
		ItemsPerPage: 5,
		Columns: []tabular.Column[VentaMesa]{
			{Key: "numero_mesa", Title: "Número de Mesa", Value: func(v VentaMesa) any { return v.NumeroMesa }, Searchable: true},
			{Key: "total_ventas", Title: "Total de Ventas", Value: func(v VentaMesa) any { return v.TotalVentas.OrZero() }, Searchable: true},
		},
	}
}

func VentasMesTabla() tabular.Config[VentaMes] {
	return tabular.Config[VentaMes]{
		ItemsPerPage: 20,
		Columns: []tabular.Column[VentaMes]{
			{Key: "anio", Title: "Año", Value: func(v VentaMes) any { return v.Anio }, Searchable: true},
			{Key: "mes", Title: "Mes", Value: func(v VentaMes) any { return NombreMes(v.Mes) }, Searchable: true},
			{Key: "numero_mesa", Title: "Número de Mesa", Value: func(v VentaMes) any { return v.NumeroMesa }, Searchable: true},
			{Key: "total_ventas", Title: "Total de Ventas", Value: func(v VentaMes) any { return v.TotalVentas.OrZero() }, Searchable: true},
		},
	}
}

// VentasPlatilloTabla opens sorted by total sales, best seller first
func VentasPlatilloTabla() tabular.Config[VentaPlatillo] {
	return tabular.Config[VentaPlatillo]{
		ItemsPerPage: 8,
		DefaultSort:  tabular.SortState{Key: "total_ventas", Direction: tabular.DirectionDesc},
		Columns: []tabular.Column[VentaPlatillo]{
			{Key: "nombre_platillo", Title: "Platillo", Value: func(v VentaPlatillo) any { return v.NombrePlatillo }, Searchable: true},
			{Key: "cantidad_vendida", Title: "Cantidad Vendida", Value: func(v VentaPlatillo) any { return v.CantidadVendida }, Searchable: true},
			{Key: "total_ventas", Title: "Total de Ventas", Value: func(v VentaPlatillo) any { return v.TotalVentas.OrZero() }, Searchable: true},
		},
	}
}

var nombresMes = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

func NombreMes(mes int) string {
	if mes < 1 || mes > 12 {
		return strconv.Itoa(mes)
	}
	return nombresMes[mes-1]
}
