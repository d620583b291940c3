package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/sitedesk/internal/cli/formatter"
	"github.com/alexanderramin/sitedesk/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// projectsLoadedMsg signals that project list data has been loaded.
type projectsLoadedMsg struct {
	projects []*domain.Project
	err      error
}

// projectListView shows an interactive, navigable list of projects.
type projectListView struct {
	state    *SharedState
	projects []*domain.Project
	cursor   int
	loading  bool
	err      error

	// Filtering
	filtering bool
	filter    string
}

func newProjectListView(state *SharedState) *projectListView {
	return &projectListView{
		state:   state,
		loading: true,
	}
}

func (v *projectListView) ID() ViewID    { return ViewProjectList }
func (v *projectListView) Title() string { return "Projects" }

// CapturesInput is true while the filter is being typed.
func (v *projectListView) CapturesInput() bool { return v.filtering }

func (v *projectListView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "orders")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "schedule")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	}
}

func (v *projectListView) Init() tea.Cmd {
	return v.loadProjects()
}

func (v *projectListView) loadProjects() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		projects, err := app.Projects.List(context.Background())
		return projectsLoadedMsg{projects: projects, err: err}
	}
}

func (v *projectListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case projectsLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.projects = msg.projects
		v.cursor = min(v.cursor, max(len(v.visibleProjects())-1, 0))
		return v, nil

	case refreshViewMsg:
		return v, v.loadProjects()

	case tea.KeyMsg:
		if v.filtering {
			return v.updateFilter(msg)
		}
		return v.updateNormal(msg)
	}
	return v, nil
}

func (v *projectListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := v.visibleProjects()

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(visible)-1 {
			v.cursor++
		}
	case "enter", "s":
		if v.cursor >= len(visible) {
			return v, nil
		}
		p := visible[v.cursor]
		v.state.SetActiveProject(p)
		if msg.String() == "s" {
			return v, pushView(newScheduleView(v.state, p))
		}
		return v, pushView(newOrdersView(v.state, p))
	case "/":
		v.filtering = true
		v.filter = ""
	}
	return v, nil
}

func (v *projectListView) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.filtering = false
		v.filter = ""
		v.cursor = 0
		return v, nil
	case tea.KeyEnter:
		v.filtering = false
		return v, nil
	case tea.KeyBackspace:
		if len(v.filter) > 0 {
			v.filter = v.filter[:len(v.filter)-1]
			v.cursor = 0
		}
	default:
		if len(msg.Runes) > 0 {
			v.filter += string(msg.Runes)
			v.cursor = 0
		}
	}
	return v, nil
}

func (v *projectListView) visibleProjects() []*domain.Project {
	if v.filter == "" {
		return v.projects
	}
	lf := strings.ToLower(v.filter)
	var filtered []*domain.Project
	for _, p := range v.projects {
		if strings.Contains(strings.ToLower(p.Name), lf) ||
			strings.Contains(strings.ToLower(p.ShortID), lf) ||
			strings.Contains(strings.ToLower(p.Client), lf) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func (v *projectListView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading projects...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}

	visible := v.visibleProjects()

	var b strings.Builder
	b.WriteString("\n")

	if v.filtering || v.filter != "" {
		b.WriteString("  " + formatter.StyleYellow.Render("/") + " " + v.filter)
		if v.filtering {
			b.WriteString("█")
		}
		b.WriteString("\n\n")
	}

	if len(visible) == 0 {
		b.WriteString("  " + formatter.Dim("No projects found.") + "\n")
		return b.String()
	}

	now := v.state.App.now()
	for i, p := range visible {
		cursor := "  "
		nameStyle := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			nameStyle = formatter.StyleBold
		}

		target := formatter.Dim("-")
		if p.TargetDate != nil {
			target = formatter.RelativeDateStyled(*p.TargetDate, now)
		}

		fmt.Fprintf(&b, "%s%s %s  %s  %s  %s\n",
			cursor,
			formatter.StyleGreen.Render(padRight(p.DisplayID(), 9)),
			nameStyle.Render(padRight(p.Name, 24)),
			formatter.Dim(padRight(p.Client, 16)),
			formatter.StatusPill(p.Status),
			target,
		)
	}

	return b.String()
}

// padRight pads a string to a fixed display width, truncating if needed.
func padRight(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		return string(r[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(r))
}
