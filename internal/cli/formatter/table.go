package formatter

import (
	"strconv"
	"strings"

	"github.com/alexanderramin/sitedesk/internal/grid"
	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// RenderTable renders a simple aligned table with a header separator line.
// Columns are padded to the widest visible cell, so styled cells align.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(headers) && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var b strings.Builder
	writeRow := func(cells []string, style func(string) string) {
		for i := range headers {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			b.WriteString(style(cell))
			if i < len(headers)-1 {
				b.WriteString(strings.Repeat(" ", max(widths[i]-lipgloss.Width(cell), 0)+colGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, func(s string) string { return StyleHeader.Render(s) })
	seps := make([]string, len(widths))
	for i, w := range widths {
		seps[i] = strings.Repeat("─", w)
	}
	writeRow(seps, func(s string) string { return StyleDim.Render(s) })
	for _, row := range rows {
		writeRow(row, func(s string) string { return s })
	}
	return b.String()
}

// RenderGrid prints rows through the same column rules the interactive table
// uses: sorted by cfg, numbered from the page offset, cells via Column.Cell.
// It is the static counterpart of grid.Model for non-interactive output.
func RenderGrid(cols []grid.Column, rows []grid.Row, cfg grid.SortConfig, page int) string {
	headers := make([]string, 0, len(cols)+1)
	headers = append(headers, "#")
	for _, c := range cols {
		headers = append(headers, grid.HeaderLabel(c, cfg))
	}

	if len(rows) == 0 {
		return RenderTable(headers, nil) + Dim("No records found.") + "\n"
	}

	body := make([][]string, 0, len(rows))
	for i, r := range grid.SortRows(rows, cfg) {
		cells := make([]string, 0, len(cols)+1)
		cells = append(cells, Dim(strconv.Itoa(grid.DisplayIndex(page, i))))
		for _, c := range cols {
			cells = append(cells, c.Cell(r))
		}
		body = append(body, cells)
	}
	return RenderTable(headers, body)
}
