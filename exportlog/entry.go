// Package exportlog keeps the audit trail of generated PDF exports: which
// report, which user, when, under which artifact id. Rows age out via the
// nightly purge job.
package exportlog

import "time"

type Entry struct {
	ID         string // uuid of the produced artifact
	Reporte    string // report name, e.g. "clientes", "arqueo"
	Usuario    string // username that exported
	GeneradoEn time.Time
}

// TargetFields - column order: id, reporte, usuario, generado_en
func (e *Entry) TargetFields() []any {
	return []any{&e.ID, &e.Reporte, &e.Usuario, &e.GeneradoEn}
}
