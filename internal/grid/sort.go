package grid

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"
)

// SortDirection is the order a sorted column is shown in.
type SortDirection int

const (
	Asc SortDirection = iota
	Desc
)

func (d SortDirection) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// ParseSortDirection accepts "asc" or "desc" (any case); anything else is Asc.
func ParseSortDirection(s string) SortDirection {
	if strings.EqualFold(strings.TrimSpace(s), "desc") {
		return Desc
	}
	return Asc
}

// SortConfig is the table's sort state. An empty Key leaves rows in the
// order they were given.
type SortConfig struct {
	Key       string
	Direction SortDirection
}

// Toggle returns the state after the user picks key: ascending on key unless
// key is already sorted ascending, in which case it flips to descending.
func (c SortConfig) Toggle(key string) SortConfig {
	if c.Key == key && c.Direction == Asc {
		return SortConfig{Key: key, Direction: Desc}
	}
	return SortConfig{Key: key, Direction: Asc}
}

// SortRows returns a sorted copy of rows. The sort is stable in both
// directions, so rows with equal values keep their input order.
func SortRows(rows []Row, cfg SortConfig) []Row {
	out := slices.Clone(rows)
	if cfg.Key == "" {
		return out
	}
	slices.SortStableFunc(out, func(a, b Row) int {
		c := Compare(a[cfg.Key], b[cfg.Key])
		if cfg.Direction == Desc {
			return -c
		}
		return c
	})
	return out
}

// Compare orders two raw cell values. Blank values sort first; numbers,
// times and booleans compare by value; anything else compares as text.
func Compare(a, b any) int {
	a, b = deref(a), deref(b)
	ab, bb := IsBlank(a), IsBlank(b)
	switch {
	case ab && bb:
		return 0
	case ab:
		return -1
	case bb:
		return 1
	}

	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			return cmp.Compare(af, bf)
		}
	}
	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			return at.Compare(bt)
		}
	}
	if ax, ok := a.(bool); ok {
		if bx, ok := b.(bool); ok {
			switch {
			case ax == bx:
				return 0
			case !ax:
				return -1
			default:
				return 1
			}
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}
