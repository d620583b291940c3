package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/sitedesk/internal/cli/formatter"
	"github.com/alexanderramin/sitedesk/internal/domain"
	"github.com/alexanderramin/sitedesk/internal/wbs"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// scheduleLoadedMsg carries the flattened schedule and the expansion to
// show it with.
type scheduleLoadedMsg struct {
	seq    int
	rows   []wbs.Row
	expand wbs.ExpandState
	err    error
}

// scheduleKeys are the tree bindings.
var scheduleKeys = struct {
	Up, Down, Toggle, Expand, Collapse, ExpandAll, CollapseAll, Progress key.Binding
}{
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Toggle:      key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "toggle")),
	Expand:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "expand")),
	Collapse:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "collapse")),
	ExpandAll:   key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "expand all")),
	CollapseAll: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "collapse all")),
	Progress:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "progress")),
}

// scheduleView shows a project's work breakdown as a collapsible tree.
// Expansion lives beside the rows and is saved after every change.
type scheduleView struct {
	state   *SharedState
	project *domain.Project

	rows    []wbs.Row
	expand  wbs.ExpandState
	visible []wbs.Row
	cursor  int
	offset  int

	loading bool
	err     error
	seq     int
}

func newScheduleView(state *SharedState, p *domain.Project) *scheduleView {
	return &scheduleView{state: state, project: p, loading: true}
}

func (v *scheduleView) ID() ViewID    { return ViewSchedule }
func (v *scheduleView) Title() string { return "Schedule" }

func (v *scheduleView) ShortHelp() []key.Binding {
	return []key.Binding{
		scheduleKeys.Toggle, scheduleKeys.ExpandAll, scheduleKeys.CollapseAll, scheduleKeys.Progress,
	}
}

func (v *scheduleView) Init() tea.Cmd {
	return v.load()
}

// load fetches the rows. The saved expansion is only read on the first
// load; later loads keep whatever the user has toggled since.
func (v *scheduleView) load() tea.Cmd {
	v.seq++
	seq, app, projectID := v.seq, v.state.App, v.project.ID
	current := v.expand
	return func() tea.Msg {
		rows, err := app.Schedules.Rows(context.Background(), projectID)
		if err != nil {
			return scheduleLoadedMsg{seq: seq, err: err}
		}
		expand := current
		if expand == nil {
			if expand, err = loadExpandState(app, projectID, rows); err != nil {
				expand = wbs.DefaultExpanded(rows)
			}
		}
		return scheduleLoadedMsg{seq: seq, rows: rows, expand: expand}
	}
}

func (v *scheduleView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case scheduleLoadedMsg:
		if msg.seq != v.seq {
			return v, nil
		}
		v.loading = false
		if msg.err != nil {
			if v.rows == nil {
				v.err = msg.err
			}
			return v, showError(msg.err)
		}
		v.err = nil
		v.rows = msg.rows
		v.expand = msg.expand
		v.refreshVisible()
		return v, nil

	case refreshViewMsg:
		return v, v.load()

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *scheduleView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if v.loading || v.expand == nil {
		return v, nil
	}
	row, hasRow := v.selected()

	switch {
	case key.Matches(msg, scheduleKeys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case key.Matches(msg, scheduleKeys.Down):
		if v.cursor < len(v.visible)-1 {
			v.cursor++
		}
	case key.Matches(msg, scheduleKeys.Toggle):
		if hasRow && row.HasChildren {
			v.expand.Toggle(row.ID)
			return v, v.changed(row.ID)
		}
	case key.Matches(msg, scheduleKeys.Expand):
		if hasRow && row.HasChildren && !v.expand.IsExpanded(row.ID) {
			v.expand.Expand(row.ID)
			return v, v.changed(row.ID)
		}
	case key.Matches(msg, scheduleKeys.Collapse):
		if hasRow && row.HasChildren && v.expand.IsExpanded(row.ID) {
			v.expand.Collapse(row.ID)
			return v, v.changed(row.ID)
		}
	case key.Matches(msg, scheduleKeys.ExpandAll):
		v.expand.ExpandAll(v.rows)
		return v, v.changed(row.ID)
	case key.Matches(msg, scheduleKeys.CollapseAll):
		v.expand.CollapseAll()
		return v, v.changed(rootOf(v.rows, row))
	case key.Matches(msg, scheduleKeys.Progress):
		if hasRow && !row.HasChildren {
			var value string
			return v, startWizard("Progress", progressForm(row, &value), func() tea.Cmd {
				return updateProgressCmd(v.state.App, row, value)
			})
		}
	}
	v.clampScroll()
	return v, nil
}

// changed recomputes visibility after the expansion changed, keeps the
// cursor on keepID (or the nearest visible row) and saves the expansion.
func (v *scheduleView) changed(keepID string) tea.Cmd {
	v.refreshVisible()
	for i, r := range v.visible {
		if r.ID == keepID {
			v.cursor = i
			break
		}
	}
	v.clampScroll()
	return v.saveExpand()
}

func (v *scheduleView) saveExpand() tea.Cmd {
	store := v.state.App.State
	if store == nil {
		return nil
	}
	projectID := v.project.ID
	snapshot := wbs.NewExpandState(v.expand.IDs())
	return func() tea.Msg {
		if err := store.SaveExpandState(projectID, snapshot); err != nil {
			return toastMsg{text: "saving tree state: " + err.Error(), isErr: true}
		}
		return nil
	}
}

func (v *scheduleView) refreshVisible() {
	v.visible = wbs.Visible(v.rows, v.expand)
	v.cursor = min(v.cursor, max(len(v.visible)-1, 0))
	v.clampScroll()
}

func (v *scheduleView) selected() (wbs.Row, bool) {
	if v.cursor < 0 || v.cursor >= len(v.visible) {
		return wbs.Row{}, false
	}
	return v.visible[v.cursor], true
}

// rootOf walks up from r to its top-level ancestor, the row that stays
// visible after everything collapses.
func rootOf(rows []wbs.Row, r wbs.Row) string {
	byID := make(map[string]wbs.Row, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}
	for r.ParentID != "" {
		parent, ok := byID[r.ParentID]
		if !ok {
			break
		}
		r = parent
	}
	return r.ID
}

// treeHeight is the number of tree lines that fit under the view's header.
func (v *scheduleView) treeHeight() int {
	return max(v.state.ContentHeight()-4, 3)
}

func (v *scheduleView) clampScroll() {
	h := v.treeHeight()
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+h {
		v.offset = v.cursor - h + 1
	}
	v.offset = max(min(v.offset, len(v.visible)-h), 0)
}

func (v *scheduleView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading schedule...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}

	var b strings.Builder
	b.WriteString("\n")
	now := v.state.App.now()
	sum := formatter.Summarize(v.rows, now)
	fmt.Fprintf(&b, "  %s  %s\n\n",
		formatter.StyleHeader.Render(v.project.Name),
		formatter.Dim(fmt.Sprintf("%d rows · %d done · %d late", sum.Rows, sum.Completed, sum.Late)))

	if len(v.rows) == 0 {
		b.WriteString("  " + formatter.Dim("No schedule imported. Use `sitedesk schedule import`.") + "\n")
		return b.String()
	}

	lines := formatter.TreeLines(v.rows, v.visible, v.expand, v.cursor)
	end := min(v.offset+v.treeHeight(), len(lines))
	b.WriteString(formatter.RenderWBSTree(lines[v.offset:end], now))
	if hidden := len(v.rows) - len(v.visible); hidden > 0 {
		b.WriteString(formatter.Dim(fmt.Sprintf("  %d collapsed rows hidden", hidden)) + "\n")
	}
	return b.String()
}
