package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/sitedesk/internal/domain"
	"github.com/alexanderramin/sitedesk/internal/wbs"
	"github.com/charmbracelet/lipgloss"
)

// FormatProjectList renders a styled project list inside a bordered box.
func FormatProjectList(projects []*domain.Project, now time.Time) string {
	if len(projects) == 0 {
		return RenderBox("Projects", Dim("No projects yet. Add one with: sitedesk project add"))
	}

	headers := []string{"ID", "NAME", "CLIENT", "LOCATION", "STATUS", "TARGET"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		id := p.ShortID
		if strings.TrimSpace(id) == "" {
			id = TruncID(p.ID)
		}
		target := Dim("-")
		if p.TargetDate != nil {
			target = Date(*p.TargetDate) + " " + Dim("("+RelativeDateFrom(*p.TargetDate, now)+")")
		}
		rows = append(rows, []string{
			StyleGreen.Render(id),
			Bold(p.Name),
			emptyDash(p.Client),
			emptyDash(p.Location),
			StatusPill(p.Status),
			target,
		})
	}
	return RenderBox("Projects", RenderTable(headers, rows))
}

// ScheduleSummary totals a project's schedule rows.
type ScheduleSummary struct {
	Rows      int
	Completed int
	Late      int
	Progress  float64 // share of rows completed, 0..1
}

// Summarize counts completed and late rows.
func Summarize(rows []wbs.Row, now time.Time) ScheduleSummary {
	s := ScheduleSummary{Rows: len(rows)}
	for _, r := range rows {
		if r.Status == domain.ScheduleCompleted {
			s.Completed++
		}
		if r.LagDays(now) > 0 {
			s.Late++
		}
	}
	if s.Rows > 0 {
		s.Progress = float64(s.Completed) / float64(s.Rows)
	}
	return s
}

// FormatProjectCard renders project metadata next to its schedule summary.
func FormatProjectCard(p *domain.Project, sum ScheduleSummary) string {
	var left strings.Builder
	left.WriteString(StyleBold.Render(p.Name) + "\n")
	left.WriteString(StylePurple.Render(emptyDash(p.Client)) + "\n\n")
	fmt.Fprintf(&left, "%s  %s\n", Dim("STATUS  "), StatusPill(p.Status))
	fmt.Fprintf(&left, "%s  %s\n", Dim("ID      "), StyleGreen.Render(p.DisplayID()))
	fmt.Fprintf(&left, "%s  %s\n", Dim("LOCATION"), emptyDash(p.Location))
	fmt.Fprintf(&left, "%s  %s\n", Dim("START   "), Date(p.StartDate))
	fmt.Fprintf(&left, "%s  %s", Dim("TARGET  "), DateOrDash(p.TargetDate))

	var right strings.Builder
	right.WriteString(Header("Schedule") + "\n")
	fmt.Fprintf(&right, "%s %s\n", Dim("rows     "), StyleFg.Render(fmt.Sprint(sum.Rows)))
	fmt.Fprintf(&right, "%s %s\n", Dim("completed"), StyleGreen.Render(fmt.Sprint(sum.Completed)))
	late := StyleFg.Render("0")
	if sum.Late > 0 {
		late = StyleRed.Render(fmt.Sprint(sum.Late))
	}
	fmt.Fprintf(&right, "%s %s\n\n", Dim("late     "), late)
	right.WriteString(RenderProgress(sum.Progress, 20))

	return RenderBox("", lipgloss.JoinHorizontal(lipgloss.Top, left.String(), "    ", right.String()))
}

func emptyDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return Dim("-")
	}
	return s
}
