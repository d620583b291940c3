package wbs

import (
	"sort"

	"github.com/alexanderramin/sitedesk/internal/domain"
)

// FromNodes rebuilds a tree from persisted schedule nodes. Siblings are
// ordered by OrderIndex. A node whose parent is not in the set becomes a
// root so its subtree is not orphaned.
func FromNodes(nodes []*domain.WBSNode) []Node {
	present := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		present[n.ID] = true
	}

	children := make(map[string][]*domain.WBSNode)
	var roots []*domain.WBSNode
	for _, n := range nodes {
		if n.ParentID == nil || *n.ParentID == "" || !present[*n.ParentID] {
			roots = append(roots, n)
			continue
		}
		children[*n.ParentID] = append(children[*n.ParentID], n)
	}

	byOrder := func(list []*domain.WBSNode) {
		sort.SliceStable(list, func(i, j int) bool { return list[i].OrderIndex < list[j].OrderIndex })
	}
	byOrder(roots)
	for _, list := range children {
		byOrder(list)
	}

	visited := make(map[string]bool, len(nodes))
	var build func(list []*domain.WBSNode) []Node
	build = func(list []*domain.WBSNode) []Node {
		out := make([]Node, 0, len(list))
		for _, n := range list {
			if visited[n.ID] {
				continue
			}
			visited[n.ID] = true
			out = append(out, Node{
				ID:           n.ID,
				Kind:         n.Kind,
				RowIndex:     n.RowIndex,
				Code:         n.Code,
				Name:         n.Name,
				Unit:         n.Unit,
				Quantity:     n.Quantity,
				DoneQuantity: n.DoneQuantity,
				Start:        n.StartDate,
				End:          n.EndDate,
				Status:       n.Status,
				Children:     build(children[n.ID]),
			})
		}
		return out
	}
	return build(roots)
}
