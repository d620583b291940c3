package wbs

import (
	"sort"

	"github.com/alexanderramin/sitedesk/internal/domain"
)

// ExpandState is the set of expanded row IDs. It is client-side state kept
// apart from the rows, so a refetch replaces rows without losing it.
type ExpandState map[string]bool

// DefaultExpanded expands every non-leaf row so the tree renders fully open.
func DefaultExpanded(rows []Row) ExpandState {
	s := make(ExpandState, len(rows))
	s.ExpandAll(rows)
	return s
}

// NewExpandState builds a state from a list of expanded IDs.
func NewExpandState(ids []string) ExpandState {
	s := make(ExpandState, len(ids))
	for _, id := range ids {
		s[id] = true
	}
	return s
}

func (s ExpandState) IsExpanded(id string) bool { return s[id] }

func (s ExpandState) Expand(id string) { s[id] = true }

func (s ExpandState) Collapse(id string) { delete(s, id) }

// Toggle flips id and reports whether it is now expanded.
func (s ExpandState) Toggle(id string) bool {
	if s[id] {
		delete(s, id)
		return false
	}
	s[id] = true
	return true
}

// ExpandAll expands every non-leaf row in rows.
func (s ExpandState) ExpandAll(rows []Row) {
	for _, r := range rows {
		if r.Kind != domain.NodeLeaf {
			s[r.ID] = true
		}
	}
}

// CollapseAll empties the set.
func (s ExpandState) CollapseAll() {
	for id := range s {
		delete(s, id)
	}
}

// IDs returns the expanded IDs in sorted order.
func (s ExpandState) IDs() []string {
	ids := make([]string, 0, len(s))
	for id, ok := range s {
		if ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Visible filters rows down to those whose every ancestor is expanded.
//
// A parent ID that cannot be found among rows ends the walk and the row is
// kept: malformed or partially displayed trees fail open instead of hiding
// data.
func Visible(rows []Row, s ExpandState) []Row {
	byID := make(map[string]Row, len(rows))
	for _, r := range rows {
		byID[r.ID] = r
	}
	visible := make([]Row, 0, len(rows))
	for _, r := range rows {
		if ancestorsExpanded(r, byID, s) {
			visible = append(visible, r)
		}
	}
	return visible
}

func ancestorsExpanded(r Row, byID map[string]Row, s ExpandState) bool {
	pid := r.ParentID
	// The hop limit stops a malformed parent cycle from spinning forever.
	for hops := 0; pid != "" && hops <= len(byID); hops++ {
		parent, ok := byID[pid]
		if !ok {
			return true
		}
		if !s[pid] {
			return false
		}
		pid = parent.ParentID
	}
	return true
}

// Descendants counts rows below id in the flat list, following ParentID links.
func Descendants(rows []Row, id string) int {
	children := make(map[string][]string, len(rows))
	for _, r := range rows {
		children[r.ParentID] = append(children[r.ParentID], r.ID)
	}
	seen := map[string]bool{id: true}
	var count func(string) int
	count = func(pid string) int {
		n := 0
		for _, c := range children[pid] {
			if seen[c] {
				continue
			}
			seen[c] = true
			n += 1 + count(c)
		}
		return n
	}
	return count(id)
}
