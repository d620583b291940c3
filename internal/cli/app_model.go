package cli

import (
	"strings"
	"time"

	"github.com/alexanderramin/sitedesk/internal/cli/formatter"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// appModel is the root bubbletea Model for the TUI.
// It manages a view stack and the status bar toast.
type appModel struct {
	state     *SharedState
	viewStack []View
	quitting  bool

	toast    string
	toastErr bool
	toastSeq int
}

func newAppModel(app *App) appModel {
	state := &SharedState{App: app}
	return appModel{
		state:     state,
		viewStack: []View{newProjectListView(state)},
	}
}

// activeView returns the top view on the stack, or nil.
func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// setActiveView replaces the top of the view stack.
// If the stack is empty, this is a no-op.
func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

// broadcast sends msg to every view on the stack. Load results can arrive
// after the view that asked for them has been covered, so they are not
// routed to the top view alone; views ignore messages they did not request.
func (m *appModel) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for i, v := range m.viewStack {
		updated, cmd := v.Update(msg)
		m.viewStack[i] = updated.(View)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m *appModel) updateActive(msg tea.Msg) tea.Cmd {
	v := m.activeView()
	if v == nil {
		return nil
	}
	updated, cmd := v.Update(msg)
	m.setActiveView(updated.(View))
	return cmd
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	if v := m.activeView(); v != nil {
		return v.Init()
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		return m, m.broadcast(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case pushViewMsg:
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case popViewMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, nil

	case refreshViewMsg:
		// Every view reloads so views under a form see its changes.
		return m, m.broadcast(msg)

	case wizardCompleteMsg:
		if len(m.viewStack) > 1 && m.activeView().ID() == ViewForm {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, msg.nextCmd

	case mutationDoneMsg:
		if msg.err != nil {
			return m, showError(msg.err)
		}
		return m, tea.Batch(showToast(msg.text), refreshViews())

	case toastMsg:
		m.toastSeq++
		m.toast = msg.text
		m.toastErr = msg.isErr
		seq := m.toastSeq
		return m, tea.Tick(toastDuration, func(time.Time) tea.Msg { return toastExpiredMsg{seq: seq} })

	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
			m.toastErr = false
		}
		return m, nil
	}

	return m, m.broadcast(msg)
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	// Forms and text filters take every key, including q and esc.
	if viewCapturesInput(m.activeView()) {
		return m, m.updateActive(msg)
	}

	switch {
	case msg.String() == "q":
		m.quitting = true
		return m, tea.Quit

	case msg.Type == tea.KeyEsc && len(m.viewStack) > 1:
		m.viewStack = m.viewStack[:len(m.viewStack)-1]
		return m, nil
	}

	return m, m.updateActive(msg)
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	body := m.renderHeader()
	if v := m.activeView(); v != nil {
		body += "\n" + v.View()
	}
	status := m.renderStatusBar()

	// Pad to terminal height so the status bar stays at the bottom and
	// bubbletea's line-diff renderer leaves no stale lines behind.
	if m.state.Height > 0 {
		lines := strings.Count(body, "\n") + 1 + strings.Count(status, "\n") + 1
		if lines < m.state.Height {
			body += strings.Repeat("\n", m.state.Height-lines)
		}
	}

	return body + "\n" + status
}

// ── rendering helpers ────────────────────────────────────────────────────────

func (m *appModel) renderHeader() string {
	title := formatter.StylePurple.Render("sitedesk")

	var crumbs []string
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	header := title
	if len(crumbs) > 0 {
		header += " " + formatter.Dim("›") + " " + formatter.Dim(strings.Join(crumbs, " › "))
	}

	if p := m.state.ActiveProject; p != nil {
		header += "  " + formatter.Dim("[") + formatter.StyleGreen.Render(p.DisplayID()) + formatter.Dim("]")
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return header + "\n" + sep
}

func (m *appModel) renderStatusBar() string {
	var bar string
	if m.toast != "" {
		if m.toastErr {
			bar = formatter.StyleRed.Render("✖ " + m.toast)
		} else {
			bar = formatter.StyleGreen.Render("✔ " + m.toast)
		}
	} else {
		var hints []string
		if v := m.activeView(); v != nil {
			for _, b := range v.ShortHelp() {
				hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
			}
		}
		if len(m.viewStack) > 1 {
			hints = append(hints, formatter.Dim("esc: back"))
		}
		hints = append(hints, formatter.Dim("q: quit"))
		bar = strings.Join(hints, "  ")
	}

	sepStyle := lipgloss.NewStyle().Foreground(formatter.ColorDim)
	return sepStyle.Render(strings.Repeat("─", max(m.state.Width, 20))) + "\n" + bar
}
