package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewID identifies each type of view in the TUI.
type ViewID int

const (
	ViewProjectList ViewID = iota
	ViewSchedule
	ViewOrders
	ViewOrderDetail
	ViewForm
)

// View is the interface that all TUI views must implement.
// It extends tea.Model with navigation and help metadata.
type View interface {
	tea.Model
	ID() ViewID
	ShortHelp() []key.Binding // key hints shown in the bottom bar
	Title() string            // breadcrumb segment for this view
}

// inputCapturer is implemented by views that sometimes hold a text input.
type inputCapturer interface {
	CapturesInput() bool
}

// viewCapturesInput returns true if the active view should receive every
// key, bypassing global bindings like q and esc.
func viewCapturesInput(v View) bool {
	if v == nil {
		return false
	}
	if v.ID() == ViewForm {
		return true
	}
	c, ok := v.(inputCapturer)
	return ok && c.CapturesInput()
}
