package cli

import (
	"testing"
	"time"

	"github.com/alexanderramin/sitedesk/internal/grid"
	"github.com/alexanderramin/sitedesk/internal/teatest"
	"github.com/charmbracelet/x/ansi"
)

// TestDriver wraps teatest.Driver with sitedesk-specific inspection methods.
// It provides access to appModel internals (view stack, shared state,
// toast) that the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
	app *App
}

// NewTestDriver creates a TestDriver from a test App.
// It constructs the appModel, sets terminal size, and drains Init()
// (which loads the project list synchronously via in-memory SQLite).
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()

	m := newAppModel(app)
	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()

	return &TestDriver{Driver: d, app: app}
}

// ── High-level helpers ───────────────────────────────────────────────────────

// SettleLoading moves the app clock past the table's loading hold so rows
// render instead of the spinner.
func (d *TestDriver) SettleLoading() {
	if c, ok := d.app.Clock.(*stepClock); ok {
		c.Advance(grid.MinLoadingDisplay + time.Millisecond)
	}
}

// PlainView returns the rendered screen without ANSI styling.
func (d *TestDriver) PlainView() string {
	return ansi.Strip(d.View())
}

// ── sitedesk-specific inspection ─────────────────────────────────────────────

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveView returns the top view on the stack.
func (d *TestDriver) ActiveView() View {
	m := d.appModel()
	return m.activeView()
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	v := d.ActiveView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ViewStackLen returns the number of views on the stack.
func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// ViewStackIDs returns the ViewIDs of all views on the stack, bottom to top.
func (d *TestDriver) ViewStackIDs() []ViewID {
	m := d.appModel()
	ids := make([]ViewID, len(m.viewStack))
	for i, v := range m.viewStack {
		ids[i] = v.ID()
	}
	return ids
}

// State returns the shared state for inspection.
func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// Toast returns the status bar toast and whether it is an error.
func (d *TestDriver) Toast() (string, bool) {
	m := d.appModel()
	return m.toast, m.toastErr
}

// IsQuitting returns whether the app has signaled a quit.
// Checks model.quitting (q/Ctrl+C) and the driver's Quitting flag
// (tea.QuitMsg seen while draining).
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}
