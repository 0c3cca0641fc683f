package records

import (
	"testing"

	"encoding/json/v2"
)

func TestMontoUnmarshalShapes(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  string
		valid bool
	}{
		{"number", `42.5`, "42.5", true},
		{"quoted string", `"120.00"`, "120", true},
		{"null", `null`, "0", false},
		{"garbage", `"N/A"`, "0", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Monto
			if err := json.Unmarshal([]byte(tt.raw), &m); err != nil {
				t.Fatalf("Unmarshal(%s): %v", tt.raw, err)
			}
			if m.Valid != tt.valid {
				t.Errorf("Valid = %v, want %v", m.Valid, tt.valid)
			}
			if got := m.OrZero().String(); got != tt.want {
				t.Errorf("OrZero = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestJoinUsuariosResolvesReferences(t *testing.T) {
	usuarios := []Usuario{
		{IDUsuario: 1, Username: "maria.gt", EmpleadoID: 10, RolID: 2, EstadoID: 1, FechaCreacion: "2024-03-01"},
		{IDUsuario: 2, Username: "huerfano", EmpleadoID: 99, RolID: 99, EstadoID: 99},
	}
	empleados := []Empleado{{ID: 10, PrimerNombre: "María", PrimerApellido: "López"}}
	roles := []Rol{{ID: 2, Nombre: "Cajero"}}
	estados := []Estado{{ID: 1, Descripcion: "Activo"}}

	rows := JoinUsuarios(usuarios, empleados, roles, estados)
	if len(rows) != 2 {
		t.Fatalf("JoinUsuarios returned %d rows, want 2", len(rows))
	}

	if rows[0].Empleado != "María" || rows[0].Apellido != "López" ||
		rows[0].Rol != "Cajero" || rows[0].Estado != "Activo" {
		t.Errorf("resolved row = %+v", rows[0])
	}
	if rows[1].Empleado != "No disponible" || rows[1].Rol != "No disponible" {
		t.Errorf("dangling references should render as No disponible, got %+v", rows[1])
	}
}

func TestNombreMes(t *testing.T) {
	if got := NombreMes(1); got != "Enero" {
		t.Errorf("NombreMes(1) = %q", got)
	}
	if got := NombreMes(12); got != "Diciembre" {
		t.Errorf("NombreMes(12) = %q", got)
	}
	if got := NombreMes(13); got != "13" {
		t.Errorf("NombreMes(13) = %q, want numeric fallback", got)
	}
}
