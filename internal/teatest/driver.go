// Package teatest drives a bubbletea model synchronously in tests.
//
// The driver calls Update directly, runs every returned Cmd and feeds its
// message back until nothing is left. Cmds that wait on a timer (spinner
// frames, cursor blinks, toast expiry, the table's loading hold) do not
// return within cmdTimeout and are dropped. Tests that need time to pass
// advance a fake clock or send the expiry message themselves.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds how many Cmd generations one Send may chain.
const MaxDrainDepth = 100

// cmdTimeout separates immediate Cmds (in-memory SQLite reads, message
// factories) from timer Cmds; the shortest timer, a spinner frame, waits
// about 100ms.
const cmdTimeout = 10 * time.Millisecond

// Driver is a synchronous harness around a tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once tea.QuitMsg comes out of a Cmd. The real runtime
	// swallows that message, so models never see it on their own.
	Quitting bool

	// Log holds every message passed to Update, oldest first.
	Log []tea.Msg
}

// Option configures a Driver in New.
type Option func(*Driver)

// WithSize sends the first WindowSizeMsg.
func WithSize(w, h int) Option {
	return func(d *Driver) { d.Resize(w, h) }
}

// New wraps model. Call DrainInit afterwards to run its Init command.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DrainInit runs the model's Init command and everything it leads to.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init(), 0)
}

// Send passes msg to Update and drains the resulting Cmds. Nothing is sent
// after the model has quit.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	d.drain(d.update(msg), 0)
}

// Resize sends a WindowSizeMsg.
func (d *Driver) Resize(w, h int) {
	d.Send(tea.WindowSizeMsg{Width: w, Height: h})
}

// namedKeys maps the key names Press accepts to their key types.
var namedKeys = map[string]tea.KeyType{
	"enter":  tea.KeyEnter,
	"esc":    tea.KeyEsc,
	"tab":    tea.KeyTab,
	"up":     tea.KeyUp,
	"down":   tea.KeyDown,
	"left":   tea.KeyLeft,
	"right":  tea.KeyRight,
	"pgup":   tea.KeyPgUp,
	"pgdown": tea.KeyPgDown,
	"ctrl+c": tea.KeyCtrlC,
	"ctrl+u": tea.KeyCtrlU,
	"ctrl+d": tea.KeyCtrlD,
}

// Key builds the KeyMsg for a key name as bubbles/key spells it: "enter",
// "down", "ctrl+c", "space" or a single character such as "s" or "/".
func Key(name string) tea.KeyMsg {
	if t, ok := namedKeys[name]; ok {
		return tea.KeyMsg{Type: t}
	}
	if name == "space" || name == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
}

// Press sends each named key in turn.
func (d *Driver) Press(keys ...string) {
	d.T.Helper()
	for _, k := range keys {
		d.Send(Key(k))
	}
}

// Type sends s one character at a time, as typed into a text input.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// View renders the model.
func (d *Driver) View() string {
	return d.Model.View()
}

// Received returns the logged messages of type M, oldest first.
func Received[M tea.Msg](d *Driver) []M {
	var out []M
	for _, msg := range d.Log {
		if m, ok := msg.(M); ok {
			out = append(out, m)
		}
	}
	return out
}

func (d *Driver) update(msg tea.Msg) tea.Cmd {
	d.Log = append(d.Log, msg)
	updated, cmd := d.Model.Update(msg)
	d.Model = updated
	return cmd
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest: stopped draining at depth %d", MaxDrainDepth)
		return
	}

	msg := runWithTimeout(cmd)
	switch m := msg.(type) {
	case nil:
		return
	case tea.BatchMsg:
		for _, sub := range m {
			d.drain(sub, depth+1)
		}
		return
	case tea.QuitMsg:
		d.Quitting = true
		d.update(m)
		return
	}
	if isCursorBlink(msg) {
		return
	}
	d.drain(d.update(msg), depth+1)
}

// runWithTimeout runs cmd and gives up after cmdTimeout, leaving the
// goroutine to finish on its own.
func runWithTimeout(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}

// isCursorBlink matches the unexported blink messages of bubbles/cursor,
// which would otherwise chain into another timer.
func isCursorBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
