package tabular

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Column describes one report column: how to read the cell value out of a
// record, and whether the free-text search inspects it.
type Column[R any] struct {
	Key        string
	Title      string
	Value      func(R) any // string, number, decimal.Decimal or time.Time
	Searchable bool
}

// Config parameterizes an Engine per report page
type Config[R any] struct {
	Columns      []Column[R]
	ItemsPerPage int
	DefaultSort  SortState // optional. zero value = keep backend order
}

// Engine owns the working set of one report page and derives the visible
// rows from it: free-text filter -> column sort -> fixed-size pages.
// All operations are pure, synchronous transformations over the in-memory
// list; the Engine itself is not safe for concurrent use.
type Engine[R any] struct {
	conf Config[R]

	working  []R // full, unfiltered list as fetched
	filtered []R // working set after query + sort
	query    string
	sort     SortState
	page     int // 1-based, always within [1, max(1, totalPages)]
}

func NewEngine[R any](conf Config[R]) (*Engine[R], error) {
	if conf.ItemsPerPage < 1 {
		return nil, fmt.Errorf("tabular: ItemsPerPage must be >= 1, got %d", conf.ItemsPerPage)
	}
	if len(conf.Columns) == 0 {
		return nil, fmt.Errorf("tabular: at least one column required")
	}
	return &Engine[R]{
		conf: conf,
		sort: conf.DefaultSort,
		page: 1,
	}, nil
}

// Load replaces the working set and the filtered view with records.
// The pending query is discarded, the current sort is re-applied,
// and the engine goes back to page 1.
func (e *Engine[R]) Load(records []R) {
	e.working = slices.Clone(records)
	e.query = ""
	e.rebuild()
	e.page = 1
}

// Search sets the free-text query and recomputes the filtered view as the
// subset of the working set whose searchable columns contain the query
// case-insensitively. The sort survives; the page resets to 1.
func (e *Engine[R]) Search(query string) {
	e.query = query
	e.rebuild()
	e.page = 1
}

// SortBy applies the header-click toggle rule, then reorders the current
// filtered view with a stable three-way comparison. Pages are recomputed
// from the sorted view; the current page is kept (clamped).
func (e *Engine[R]) SortBy(key string) {
	e.sort = e.sort.toggled(key)
	e.applySort()
	e.page = e.clampPage(e.page)
}

// SetPage navigates to page n, clamped into [1, max(1, totalPages)].
func (e *Engine[R]) SetPage(n int) {
	e.page = e.clampPage(n)
}

// CurrentPageRows returns a snapshot slice of the rows on the current page,
// never more than ItemsPerPage. Empty filtered view yields an empty slice.
func (e *Engine[R]) CurrentPageRows() []R {
	if len(e.filtered) == 0 {
		return []R{}
	}
	first := (e.page - 1) * e.conf.ItemsPerPage
	last := min(first+e.conf.ItemsPerPage, len(e.filtered))
	return slices.Clone(e.filtered[first:last])
}

// TotalPages = ceil(filteredCount / itemsPerPage). Zero when no rows.
func (e *Engine[R]) TotalPages() int {
	return (len(e.filtered) + e.conf.ItemsPerPage - 1) / e.conf.ItemsPerPage
}

func (e *Engine[R]) CurrentPage() int { return e.page }

func (e *Engine[R]) FilteredCount() int { return len(e.filtered) }

func (e *Engine[R]) Query() string { return e.query }

func (e *Engine[R]) Sort() SortState { return e.sort }

func (e *Engine[R]) Columns() []Column[R] { return e.conf.Columns }

// PageNumbers lists 1..TotalPages for the pagination nav
func (e *Engine[R]) PageNumbers() []int {
	nums := make([]int, 0, e.TotalPages())
	for n := 1; n <= e.TotalPages(); n++ {
		nums = append(nums, n)
	}
	return nums
}

// rebuild recomputes the filtered view from the working set: filter first,
// then re-apply the standing sort
func (e *Engine[R]) rebuild() {
	if e.query == "" {
		e.filtered = slices.Clone(e.working)
	} else {
		needle := strings.ToLower(e.query)
		e.filtered = make([]R, 0, len(e.working))
		for _, rec := range e.working {
			if e.matches(rec, needle) {
				e.filtered = append(e.filtered, rec)
			}
		}
	}
	e.applySort()
}

func (e *Engine[R]) matches(rec R, lowerNeedle string) bool {
	for _, col := range e.conf.Columns {
		if !col.Searchable {
			continue
		}
		cell := CellString(col.Value(rec))
		if strings.Contains(strings.ToLower(cell), lowerNeedle) {
			return true
		}
	}
	return false
}

func (e *Engine[R]) applySort() {
	if e.sort.Key == "" || e.sort.Direction == DirectionNone {
		return
	}
	col, ok := e.column(e.sort.Key)
	if !ok {
		// unknown sort key: comparator sees nothing to compare, order unchanged
		return
	}
	slices.SortStableFunc(e.filtered, func(a, b R) int {
		cmp := CompareValues(col.Value(a), col.Value(b))
		if e.sort.Direction == DirectionDesc {
			return -cmp
		}
		return cmp
	})
}

func (e *Engine[R]) column(key string) (Column[R], bool) {
	for _, col := range e.conf.Columns {
		if col.Key == key {
			return col, true
		}
	}
	return Column[R]{}, false
}

func (e *Engine[R]) clampPage(n int) int {
	last := max(1, e.TotalPages())
	return min(max(1, n), last)
}

// CellString renders a loosely-typed cell value the way the report tables
// and the free-text filter see it
func CellString(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case decimal.Decimal:
		return c.StringFixed(2)
	case time.Time:
		return c.Format("02/01/2006")
	default:
		return fmt.Sprint(c)
	}
}
