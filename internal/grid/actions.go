package grid

import tea "github.com/charmbracelet/bubbletea"

// Actions is the set of capabilities a caller plugs into the table. A nil
// field is not offered: its key does nothing and it is not drawn.
type Actions struct {
	// Select runs when the row itself is activated.
	Select func(Row) tea.Cmd

	View   func(Row) tea.Cmd
	Edit   func(Row) tea.Cmd
	Delete func(Row) tea.Cmd

	// Table-level actions.
	Add    func() tea.Cmd
	Filter func() tea.Cmd
}

// hasRowActions reports whether any per-row button is present.
func (a Actions) hasRowActions() bool {
	return a.View != nil || a.Edit != nil || a.Delete != nil
}
