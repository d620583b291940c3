package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/sitedesk/internal/domain"
	"github.com/alexanderramin/sitedesk/internal/wbs"
	"github.com/charmbracelet/lipgloss"
)

// TreeLine is one schedule row as the tree renderer shows it.
type TreeLine struct {
	Row      wbs.Row
	Expanded bool
	Selected bool
	// Hidden counts the descendants a collapsed row is hiding.
	Hidden int
}

const (
	markerOpen   = "▾ "
	markerClosed = "▸ "
	markerLeaf   = "  "
	indentUnit   = "  "
)

// TreeLines pairs visible rows with their expansion state. rows is the full
// flattened schedule, used to count what each collapsed row hides.
func TreeLines(rows, visible []wbs.Row, state wbs.ExpandState, cursor int) []TreeLine {
	lines := make([]TreeLine, len(visible))
	for i, r := range visible {
		l := TreeLine{Row: r, Expanded: state.IsExpanded(r.ID), Selected: i == cursor}
		if r.HasChildren && !l.Expanded {
			l.Hidden = wbs.Descendants(rows, r.ID)
		}
		lines[i] = l
	}
	return lines
}

// RenderWBSTree renders schedule rows indented by level with expand markers,
// a completion bar and right-aligned quantity and lag badges.
func RenderWBSTree(lines []TreeLine, now time.Time) string {
	if len(lines) == 0 {
		return ""
	}

	type rendered struct {
		content string
		badge   string
	}
	out := make([]rendered, len(lines))
	maxWidth := 0

	// Pass 1: build each line and track the widest title.
	for i, l := range lines {
		r := l.Row
		marker := markerLeaf
		if r.HasChildren {
			marker = markerClosed
			if l.Expanded {
				marker = markerOpen
			}
		}

		cursor := "  "
		name := r.Name
		switch {
		case l.Selected:
			cursor = StyleGreen.Render("▸ ")
			name = StyleBold.Render(name)
		case r.Kind == domain.NodeGroup:
			name = StyleHeader.Render(name)
		case r.Status == domain.ScheduleCompleted:
			name = Dim(name)
		}

		content := cursor +
			StyleDim.Render(fmt.Sprintf("%3d ", r.RowIndex)) +
			strings.Repeat(indentUnit, r.Level) +
			StyleDim.Render(marker) + name
		if l.Hidden > 0 {
			content += StyleDim.Render(fmt.Sprintf(" (+%d)", l.Hidden))
		}
		out[i].content = content
		out[i].badge = rowBadge(r, now)
		maxWidth = max(maxWidth, lipgloss.Width(content))
	}

	// Pass 2: align badges.
	var b strings.Builder
	for _, o := range out {
		if o.badge == "" {
			b.WriteString(o.content + "\n")
			continue
		}
		pad := maxWidth - lipgloss.Width(o.content)
		b.WriteString(o.content + strings.Repeat(" ", pad) + "  " + o.badge + "\n")
	}
	return b.String()
}

func rowBadge(r wbs.Row, now time.Time) string {
	if r.Quantity <= 0 {
		return ""
	}
	parts := []string{
		RenderCompactBar(r.DoneQuantity/r.Quantity, 10, r.Status == domain.ScheduleCompleted),
		StyleBlue.Render(fmt.Sprintf("%s / %s", Quantity(r.DoneQuantity, ""), Quantity(r.Quantity, r.Unit))),
	}
	if lag := r.LagDays(now); lag > 0 {
		parts = append(parts, StyleRed.Render(fmt.Sprintf("%dd late", lag)))
	}
	return strings.Join(parts, "  ")
}
