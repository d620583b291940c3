package cli

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack. Views that act
// on a selected record receive it through their constructor, so the record
// travels with this message.
type pushViewMsg struct {
	view View
}

// popViewMsg pops the current view off the navigation stack,
// returning to the previous view.
type popViewMsg struct{}

// refreshViewMsg asks every view on the stack to reload its data.
type refreshViewMsg struct{}

// wizardCompleteMsg is sent when a wizard form completes or is cancelled.
// The appModel handles it atomically: pop the wizard view, then run nextCmd.
type wizardCompleteMsg struct {
	nextCmd tea.Cmd
}

// toastDuration is how long a toast stays in the status bar.
const toastDuration = 4 * time.Second

// toastMsg shows a transient message in the status bar.
type toastMsg struct {
	text  string
	isErr bool
}

// toastExpiredMsg clears the toast it was scheduled for. A newer toast
// bumps the sequence, so an older expiry leaves it alone.
type toastExpiredMsg struct {
	seq int
}

// pushView returns a tea.Cmd that pushes a view onto the stack.
func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

// popView returns a tea.Cmd that pops the current view.
func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

func refreshViews() tea.Cmd {
	return func() tea.Msg { return refreshViewMsg{} }
}

// showToast returns a tea.Cmd that flashes text in the status bar.
func showToast(text string) tea.Cmd {
	return func() tea.Msg { return toastMsg{text: text} }
}

// showError returns a tea.Cmd that flashes err in the status bar.
func showError(err error) tea.Cmd {
	return func() tea.Msg { return toastMsg{text: err.Error(), isErr: true} }
}

// mutationDoneMsg reports the outcome of a write made from a form. On
// success the app toasts text and refreshes every view; on failure it
// toasts the error and leaves the views as they are.
type mutationDoneMsg struct {
	text string
	err  error
}
