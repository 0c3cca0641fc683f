package tabular

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Direction int

const (
	DirectionNone Direction = iota
	DirectionAsc
	DirectionDesc
)

func (d Direction) String() string {
	switch d {
	case DirectionAsc:
		return "asc"
	case DirectionDesc:
		return "desc"
	default:
		return ""
	}
}

// SortState - Direction is meaningful only when Key is non-empty
type SortState struct {
	Key       string
	Direction Direction
}

// toggled returns the next SortState for a header click on key:
// a new key starts ascending, clicking the current ascending key flips it
func (s SortState) toggled(key string) SortState {
	if s.Key == key && s.Direction == DirectionAsc {
		return SortState{Key: key, Direction: DirectionDesc}
	}
	return SortState{Key: key, Direction: DirectionAsc}
}

// CompareValues is a three-way comparison over the loosely-typed cell values
// reports carry: numbers compare numerically, strings lexicographically,
// times chronologically. A nil on either side compares equal, so sorting on
// a key a record lacks leaves the relative order untouched.
func CompareValues(a, b any) int {
	if a == nil || b == nil {
		return 0
	}

	if da, ok := toDecimal(a); ok {
		if db, ok := toDecimal(b); ok {
			return da.Cmp(db)
		}
	}

	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb)
		}
	}

	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		return strings.Compare(as, bs)
	}

	// mixed or unknown types: no meaningful order
	return 0
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	case float64:
		return decimal.NewFromFloat(n), true
	case decimal.Decimal:
		return n, true
	default:
		return decimal.Decimal{}, false
	}
}
