package exportlog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/miralago/reportes-gw/db/sqldb"
)

const (
	insertStmt = `INSERT INTO export_log (id, reporte, usuario, generado_en) VALUES (?, ?, ?, ?)`
	recentStmt = `SELECT id, reporte, usuario, generado_en FROM export_log ORDER BY generado_en DESC LIMIT ?`
	findStmt   = `SELECT id, reporte, usuario, generado_en FROM export_log WHERE id = ?`
	purgeStmt  = `DELETE FROM export_log WHERE generado_en < ?`
)

// Store writes and reads the export audit table through one of the SQL DB
// clients. DBType selects the placeholder dialect.
type Store struct {
	DB     sqldb.Handle
	DBType string
}

// Record logs one produced export and returns its entry with a fresh
// artifact id
func (s *Store) Record(ctx context.Context, reporte string, usuario string) (*Entry, error) {
	entry := &Entry{
		ID:         uuid.NewString(),
		Reporte:    reporte,
		Usuario:    usuario,
		GeneradoEn: time.Now().UTC(),
	}
	_, err := s.DB.Exec(ctx, sqldb.ForDialect(insertStmt, s.DBType),
		entry.ID, entry.Reporte, entry.Usuario, entry.GeneradoEn)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Store) ListRecent(ctx context.Context, limit int) ([]*Entry, error) {
	return sqldb.QueryItems[Entry, *Entry](ctx, s.DB, sqldb.ForDialect(recentStmt, s.DBType), limit)
}

// Find looks one export entry up by its artifact id
func (s *Store) Find(ctx context.Context, id string) (*Entry, error) {
	return sqldb.QueryItem[Entry, *Entry](ctx, s.DB, sqldb.ForDialect(findStmt, s.DBType), id)
}

// PurgeOlderThan removes entries generated before cutoff and returns how
// many went away. The scheduler runs this nightly.
func (s *Store) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.DB.Exec(ctx, sqldb.ForDialect(purgeStmt, s.DBType), cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
