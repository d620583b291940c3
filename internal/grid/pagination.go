package grid

import tea "github.com/charmbracelet/bubbletea"

// PageSize is the number of rows a data source returns per page.
const PageSize = 10

// DisplayIndex is the 1-based row number shown for the rowIndex-th row of
// page (1-based).
func DisplayIndex(page, rowIndex int) int {
	if page < 1 {
		page = 1
	}
	return (page-1)*PageSize + rowIndex + 1
}

// Pagination is owned by the table's parent, which fetches one page at a
// time. The table only asks for a different page through OnChange.
type Pagination struct {
	Current  int
	Total    int
	OnChange func(page int) tea.Cmd
}

func (p Pagination) current() int {
	if p.Current < 1 {
		return 1
	}
	return p.Current
}

func (p Pagination) total() int {
	if p.Total < 1 {
		return 1
	}
	return p.Total
}

// request asks the parent for page if it is in range and differs from the
// current one.
func (p Pagination) request(page int) tea.Cmd {
	if p.OnChange == nil || page < 1 || page > p.total() || page == p.current() {
		return nil
	}
	return p.OnChange(page)
}
