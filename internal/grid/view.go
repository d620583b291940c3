package grid

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Gruvbox palette, kept in step with the CLI formatter.
var (
	colorHeader = lipgloss.Color("#fe8019")
	colorDim    = lipgloss.Color("#928374")
	colorFg     = lipgloss.Color("#ebdbb2")
	colorBlue   = lipgloss.Color("#83a598")
	colorYellow = lipgloss.Color("#fabd2f")
)

// Styles holds the table's lipgloss styles.
type Styles struct {
	Header     lipgloss.Style
	SortHeader lipgloss.Style
	Separator  lipgloss.Style
	Selected   lipgloss.Style
	Index      lipgloss.Style
	Action     lipgloss.Style
	Empty      lipgloss.Style
	Spinner    lipgloss.Style
	Footer     lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Header:     lipgloss.NewStyle().Foreground(colorHeader).Bold(true),
		SortHeader: lipgloss.NewStyle().Foreground(colorYellow).Bold(true).Underline(true),
		Separator:  lipgloss.NewStyle().Foreground(colorDim),
		Selected:   lipgloss.NewStyle().Foreground(colorFg).Bold(true),
		Index:      lipgloss.NewStyle().Foreground(colorDim),
		Action:     lipgloss.NewStyle().Foreground(colorBlue),
		Empty:      lipgloss.NewStyle().Foreground(colorDim).Italic(true),
		Spinner:    lipgloss.NewStyle().Foreground(colorYellow),
		Footer:     lipgloss.NewStyle().Foreground(colorDim),
	}
}

const colGap = 2

// HeaderLabel is the header text for c under cfg, with an arrow on the
// sorted column.
func HeaderLabel(c Column, cfg SortConfig) string {
	if cfg.Key == "" || cfg.Key != c.Key {
		return c.Label
	}
	if cfg.Direction == Desc {
		return c.Label + " ▼"
	}
	return c.Label + " ▲"
}

// label lists the row actions present, in key order.
func (a Actions) label() string {
	var parts []string
	if a.View != nil {
		parts = append(parts, "[v]iew")
	}
	if a.Edit != nil {
		parts = append(parts, "[e]dit")
	}
	if a.Delete != nil {
		parts = append(parts, "[x]del")
	}
	return strings.Join(parts, " ")
}

func (m Model) View() string {
	headers := []string{"#"}
	for _, c := range m.columns {
		headers = append(headers, HeaderLabel(c, m.sort))
	}
	showActions := m.actions.hasRowActions()
	if showActions {
		headers = append(headers, "Actions")
	}

	var body [][]string
	if !m.gate.Active() {
		page := m.page.current()
		actions := m.actions.label()
		for i, row := range m.sorted {
			cells := []string{strconv.Itoa(DisplayIndex(page, i))}
			for _, c := range m.columns {
				cells = append(cells, clip(c.Cell(row), c.MaxWidth))
			}
			if showActions {
				cells = append(cells, actions)
			}
			body = append(body, cells)
		}
	}

	widths := columnWidths(headers, body)
	total := (len(widths) - 1) * colGap
	for _, w := range widths {
		total += w
	}

	var b strings.Builder
	b.WriteString("  ")
	for i, h := range headers {
		style := m.styles.Header
		if i > 0 && i-1 == m.sortCol && i-1 < len(m.columns) {
			style = m.styles.SortHeader
		}
		b.WriteString(pad(style.Render(h), widths[i], i == len(headers)-1))
	}
	b.WriteString("\n  ")
	for i, w := range widths {
		b.WriteString(m.styles.Separator.Render(strings.Repeat("─", w)))
		if i < len(widths)-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")

	switch {
	case m.gate.Active():
		b.WriteString("  " + m.spinner.View() + " " + m.styles.Empty.Render("Loading..."))
		b.WriteString("\n")
	case len(body) == 0:
		b.WriteString("  " + m.styles.Empty.Width(max(total, lipgloss.Width(m.emptyText))).Align(lipgloss.Center).Render(m.emptyText))
		b.WriteString("\n")
	default:
		for r, cells := range body {
			var line strings.Builder
			for i, cell := range cells {
				if i == 0 {
					cell = m.styles.Index.Render(cell)
				}
				if showActions && i == len(cells)-1 {
					cell = m.styles.Action.Render(cell)
				}
				line.WriteString(pad(cell, widths[i], i == len(cells)-1))
			}
			if r == m.cursor {
				b.WriteString(m.styles.Selected.Render("▸ " + line.String()))
			} else {
				b.WriteString("  " + line.String())
			}
			b.WriteString("\n")
		}
	}

	if m.page.total() > 1 {
		b.WriteString(m.styles.Footer.Render(m.pager.View()))
		b.WriteString("\n")
	}
	return b.String()
}

func columnWidths(headers []string, body [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range body {
		for i := 0; i < len(widths) && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func pad(s string, width int, last bool) string {
	if last {
		return s
	}
	gap := width - lipgloss.Width(s)
	if gap < 0 {
		gap = 0
	}
	return s + strings.Repeat(" ", gap+colGap)
}

// clip cuts s to max cells with an ellipsis; max 0 leaves s alone.
func clip(s string, max int) string {
	if max <= 0 || lipgloss.Width(s) <= max {
		return s
	}
	return ansi.Truncate(s, max, "…")
}
