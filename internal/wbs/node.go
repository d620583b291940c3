// Package wbs flattens work-breakdown schedule trees into level-annotated
// rows for table display and tracks which rows are expanded.
//
// A tree is at most four levels deep: group, item, task and leaf. Only
// nodes that carry a row index are displayed; the row index also defines
// the final display order.
package wbs

import (
	"time"

	"github.com/alexanderramin/sitedesk/internal/domain"
)

// MaxDepth is the number of levels a schedule tree may have.
const MaxDepth = 4

// Node is one schedule node of any kind. Children are always one level
// deeper than their parent.
type Node struct {
	ID           string // persisted ID; empty for freshly decoded trees
	SourceID     string // ID carried by the import file, informational only
	Kind         domain.NodeKind
	RowIndex     *int
	Code         string
	Name         string
	Unit         string
	Quantity     float64
	DoneQuantity float64
	Start        *time.Time
	End          *time.Time
	Status       domain.ScheduleStatus
	Children     []Node
}

// Count returns the number of nodes in the subtree rooted at each of nodes.
func Count(nodes []Node) int {
	n := 0
	for _, node := range nodes {
		n += 1 + Count(node.Children)
	}
	return n
}
