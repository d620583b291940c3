package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// wizardView wraps a huh.Form as a View on the navigation stack.
// When the form completes it sends a wizardCompleteMsg carrying the done
// callback's command; the app pops the form before running it.
type wizardView struct {
	form     *huh.Form
	titleStr string
	done     func() tea.Cmd

	// finished is set once the completion message has been sent, so a
	// message arriving before the app pops the form cannot run done twice.
	finished bool
}

func newWizardView(title string, form *huh.Form, done func() tea.Cmd) *wizardView {
	return &wizardView{
		form:     form,
		titleStr: title,
		done:     done,
	}
}

func (v *wizardView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *wizardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if v.finished {
		return v, nil
	}

	// Escape cancels the wizard.
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		v.finished = true
		return v, func() tea.Msg { return wizardCompleteMsg{nextCmd: showToast("Cancelled.")} }
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	switch v.form.State {
	case huh.StateCompleted:
		v.finished = true
		var doneCmd tea.Cmd
		if v.done != nil {
			doneCmd = v.done()
		}
		return v, func() tea.Msg { return wizardCompleteMsg{nextCmd: doneCmd} }
	case huh.StateAborted:
		v.finished = true
		return v, func() tea.Msg { return wizardCompleteMsg{nextCmd: showToast("Cancelled.")} }
	}

	return v, cmd
}

func (v *wizardView) View() string {
	return "\n" + v.form.View()
}

func (v *wizardView) ID() ViewID    { return ViewForm }
func (v *wizardView) Title() string { return v.titleStr }
func (v *wizardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// startWizard pushes a wizardView for form.
func startWizard(title string, form *huh.Form, done func() tea.Cmd) tea.Cmd {
	return pushView(newWizardView(title, form, done))
}
