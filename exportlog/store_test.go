package exportlog

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/miralago/reportes-gw/db/sqldb"
)

type fakeResult struct{ affected int64 }

func (r fakeResult) RowsAffected() (int64, error) { return r.affected, nil }
func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }

// execRecorder satisfies sqldb.Handle, records the last statement, and
// serves canned rows to the query paths
type execRecorder struct {
	query    string
	args     []any
	affected int64
	rows     [][]any
}

func (h *execRecorder) Exec(_ context.Context, query string, args ...any) (sqldb.Result, error) {
	h.query, h.args = query, args
	return fakeResult{affected: h.affected}, nil
}

func (h *execRecorder) QueryRows(_ context.Context, query string, args ...any) (sqldb.Rows, error) {
	h.query, h.args = query, args
	return &fakeRows{rows: h.rows}, nil
}

func (h *execRecorder) QueryRow(_ context.Context, query string, args ...any) sqldb.Row {
	h.query, h.args = query, args
	return fakeRow{vals: h.rows[0]}
}

type fakeRows struct {
	rows [][]any
	idx  int
}

func (r *fakeRows) Next() bool {
	r.idx++
	return r.idx <= len(r.rows)
}

func (r *fakeRows) Scan(dest ...any) error { return scanInto(r.rows[r.idx-1], dest) }
func (r *fakeRows) Close() error           { return nil }
func (r *fakeRows) Err() error             { return nil }

type fakeRow struct{ vals []any }

func (r fakeRow) Scan(dest ...any) error { return scanInto(r.vals, dest) }

func scanInto(vals []any, dest []any) error {
	for i, v := range vals {
		switch d := dest[i].(type) {
		case *string:
			d2, _ := v.(string)
			*d = d2
		case *time.Time:
			d2, _ := v.(time.Time)
			*d = d2
		default:
			return fmt.Errorf("unsupported scan target %T", dest[i])
		}
	}
	return nil
}

func TestRecordGeneratesArtifactID(t *testing.T) {
	h := &execRecorder{}
	s := &Store{DB: h, DBType: "mysql"}

	entry, err := s.Record(context.Background(), "clientes", "maria.gt")
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if entry.ID == "" || len(entry.ID) != 36 {
		t.Errorf("artifact id = %q, want uuid", entry.ID)
	}
	if entry.Reporte != "clientes" || entry.Usuario != "maria.gt" {
		t.Errorf("entry = %+v", entry)
	}
	if !strings.Contains(h.query, "INSERT INTO export_log") {
		t.Errorf("query = %q", h.query)
	}
	if len(h.args) != 4 {
		t.Errorf("args = %v", h.args)
	}

	// ids must be unique per artifact
	again, err := s.Record(context.Background(), "clientes", "maria.gt")
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if again.ID == entry.ID {
		t.Error("two exports share an artifact id")
	}
}

func TestListRecentScansEntries(t *testing.T) {
	gen := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	h := &execRecorder{rows: [][]any{
		{"id-1", "clientes", "maria.gt", gen},
		{"id-2", "arqueo", "pedro.gt", gen.Add(-time.Hour)},
	}}
	s := &Store{DB: h, DBType: "pgsql"}

	entries, err := s.ListRecent(context.Background(), 2)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
	if entries[0].ID != "id-1" || entries[0].Reporte != "clientes" || !entries[0].GeneradoEn.Equal(gen) {
		t.Errorf("first entry = %+v", entries[0])
	}
	if entries[1].Usuario != "pedro.gt" {
		t.Errorf("second entry = %+v", entries[1])
	}
	if !strings.Contains(h.query, "LIMIT $1") {
		t.Errorf("query = %q, want pgsql placeholder", h.query)
	}
}

func TestFindByArtifactID(t *testing.T) {
	gen := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	h := &execRecorder{rows: [][]any{{"id-7", "factura", "maria.gt", gen}}}
	s := &Store{DB: h, DBType: "mysql"}

	entry, err := s.Find(context.Background(), "id-7")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if entry.ID != "id-7" || entry.Reporte != "factura" {
		t.Errorf("entry = %+v", entry)
	}
	if !strings.Contains(h.query, "WHERE id = ?") {
		t.Errorf("query = %q", h.query)
	}
}

func TestPurgeOlderThanPlaceholderDialect(t *testing.T) {
	tests := []struct {
		dbType string
		want   string
	}{
		{"mysql", "generado_en < ?"},
		{"pgsql", "generado_en < $1"},
	}
	for _, tt := range tests {
		t.Run(tt.dbType, func(t *testing.T) {
			h := &execRecorder{affected: 3}
			s := &Store{DB: h, DBType: tt.dbType}

			n, err := s.PurgeOlderThan(context.Background(), time.Now().Add(-30*24*time.Hour))
			if err != nil {
				t.Fatalf("PurgeOlderThan: %v", err)
			}
			if n != 3 {
				t.Errorf("purged = %d, want 3", n)
			}
			if !strings.Contains(h.query, tt.want) {
				t.Errorf("query = %q, want placeholder %q", h.query, tt.want)
			}
		})
	}
}
