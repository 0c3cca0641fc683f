package records

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Monto is a money amount as the backend actually sends it: sometimes a JSON
// number, sometimes a quoted numeric string (MySQL aggregates), sometimes
// null. Anything non-numeric decodes as the zero amount instead of failing,
// so a malformed line never breaks a whole report or an invoice total.
type Monto struct {
	decimal.Decimal
	Valid bool
}

func NewMonto(d decimal.Decimal) Monto {
	return Monto{Decimal: d, Valid: true}
}

func MontoFromInt(n int64) Monto {
	return NewMonto(decimal.NewFromInt(n))
}

func (m *Monto) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*m = Monto{}
		return nil
	}
	raw = strings.Trim(raw, `"`)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		// non-numeric contributes zero, never an error
		*m = Monto{}
		return nil
	}
	m.Decimal = d
	m.Valid = true
	return nil
}

func (m *Monto) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return []byte(m.Decimal.String()), nil
}

// OrZero is the amount usable in arithmetic: zero when the backend sent
// null or garbage
func (m Monto) OrZero() decimal.Decimal {
	if !m.Valid {
		return decimal.Zero
	}
	return m.Decimal
}
