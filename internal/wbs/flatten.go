package wbs

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"time"

	"github.com/alexanderramin/sitedesk/internal/domain"
)

// Row is a flattened, displayable schedule node.
type Row struct {
	ID           string
	ParentID     string // "" for roots
	Kind         domain.NodeKind
	Level        int
	RowIndex     int
	HasChildren  bool
	Code         string
	Name         string
	Unit         string
	Quantity     float64
	DoneQuantity float64
	Start        *time.Time
	End          *time.Time
	Status       domain.ScheduleStatus
}

// Balance is the quantity still to be executed, floored at zero.
func (r Row) Balance() float64 {
	return math.Max(r.Quantity-r.DoneQuantity, 0)
}

// LagDays returns how many whole days the row is past its end date without
// being completed. Rows without an end date never lag.
func (r Row) LagDays(now time.Time) int {
	if r.End == nil || r.Status == domain.ScheduleCompleted {
		return 0
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	end := time.Date(r.End.Year(), r.End.Month(), r.End.Day(), 0, 0, 0, 0, time.UTC)
	if !today.After(end) {
		return 0
	}
	return int(today.Sub(end).Hours() / 24)
}

// Flatten walks the tree depth-first in pre-order, visiting children in
// slice order, and returns every node that carries a row index sorted by
// that index. Nodes without a row index are skipped but their children are
// still visited, so a row's ParentID may name a node that is not in the
// result.
func Flatten(roots []Node) []Row {
	var rows []Row
	var walk func(nodes []Node, parentID, path string, level int)
	walk = func(nodes []Node, parentID, path string, level int) {
		for i, n := range nodes {
			at := pathID(path, i)
			id := n.ID
			if id == "" {
				id = at
			}
			if n.RowIndex != nil {
				rows = append(rows, Row{
					ID:           id,
					ParentID:     parentID,
					Kind:         n.Kind,
					Level:        level,
					RowIndex:     *n.RowIndex,
					HasChildren:  len(n.Children) > 0,
					Code:         n.Code,
					Name:         n.Name,
					Unit:         n.Unit,
					Quantity:     n.Quantity,
					DoneQuantity: n.DoneQuantity,
					Start:        n.Start,
					End:          n.End,
					Status:       n.Status,
				})
			}
			walk(n.Children, id, at, level+1)
		}
	}
	walk(roots, "", "", 0)

	slices.SortStableFunc(rows, func(a, b Row) int {
		return cmp.Compare(a.RowIndex, b.RowIndex)
	})
	return rows
}

// pathID builds a positional ID ("2", "2.1", "2.1.3") for nodes that have
// no persisted ID.
func pathID(parent string, i int) string {
	if parent == "" {
		return strconv.Itoa(i + 1)
	}
	return parent + "." + strconv.Itoa(i+1)
}
