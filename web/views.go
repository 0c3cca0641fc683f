package web

import (
	"github.com/miralago/reportes-gw/tabular"
)

// ColumnView is one table header cell: title plus the sort parameters its
// link submits
type ColumnView struct {
	Key        string
	Title      string
	SortDir    string // direction a click on this header requests
	SortedAsc  bool
	SortedDesc bool
}

// TableView is the render model of one report table. Rows are cell strings
// in column order. SortKey/SortDirection echo the standing sort so search
// and pagination links can carry it forward.
type TableView struct {
	Title         string
	Columns       []ColumnView
	Rows          [][]string
	Query         string
	SortKey       string
	SortDirection string // "asc" or "desc"; empty when unsorted
	CurrentPage   int
	TotalPages    int
	PageNumbers   []int
	Empty         bool // true renders the "No se encontraron resultados" state
}

// BuildTableView flattens the engine's current page into strings for the
// template. Header links encode the toggle rule: clicking the current
// ascending column requests descending, anything else requests ascending.
func BuildTableView[R any](title string, e *tabular.Engine[R]) TableView {
	sort := e.Sort()

	cols := make([]ColumnView, 0, len(e.Columns()))
	for _, col := range e.Columns() {
		cv := ColumnView{Key: col.Key, Title: col.Title, SortDir: "asc"}
		if sort.Key == col.Key {
			switch sort.Direction {
			case tabular.DirectionAsc:
				cv.SortedAsc = true
				cv.SortDir = "desc"
			case tabular.DirectionDesc:
				cv.SortedDesc = true
			}
		}
		cols = append(cols, cv)
	}

	pageRows := e.CurrentPageRows()
	rows := make([][]string, 0, len(pageRows))
	for _, rec := range pageRows {
		cells := make([]string, 0, len(e.Columns()))
		for _, col := range e.Columns() {
			cells = append(cells, tabular.CellString(col.Value(rec)))
		}
		rows = append(rows, cells)
	}

	view := TableView{
		Title:       title,
		Columns:     cols,
		Rows:        rows,
		Query:       e.Query(),
		CurrentPage: e.CurrentPage(),
		TotalPages:  e.TotalPages(),
		PageNumbers: e.PageNumbers(),
		Empty:       e.FilteredCount() == 0,
	}
	if sort.Key != "" && sort.Direction != tabular.DirectionNone {
		view.SortKey = sort.Key
		view.SortDirection = sort.Direction.String()
	}
	return view
}

// applyTableParams drives the engine from the request's query string:
// search, sort key + direction, page number
func applyTableParams[R any](e *tabular.Engine[R], query string, sortKey string, sortDir string, page int) {
	if query != "" {
		e.Search(query)
	}
	if sortKey != "" {
		e.SortBy(sortKey) // ascending
		if sortDir == "desc" {
			e.SortBy(sortKey) // toggle to descending
		}
	}
	if page > 0 {
		e.SetPage(page)
	}
}
