package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubView struct {
	id         ViewID
	title      string
	viewText   string
	shortHelp  []key.Binding
	initCmd    tea.Cmd
	updateCmd  tea.Cmd
	updateSeen []tea.Msg
}

func (v *stubView) Init() tea.Cmd { return v.initCmd }

func (v *stubView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	v.updateSeen = append(v.updateSeen, msg)
	return v, v.updateCmd
}

func (v *stubView) View() string             { return v.viewText }
func (v *stubView) ID() ViewID               { return v.id }
func (v *stubView) ShortHelp() []key.Binding { return v.shortHelp }
func (v *stubView) Title() string            { return v.title }
func newStubView(id ViewID, title, text string) *stubView {
	return &stubView{id: id, title: title, viewText: text}
}

func update(t *testing.T, m appModel, msg tea.Msg) (appModel, tea.Cmd) {
	t.Helper()
	model, cmd := m.Update(msg)
	return model.(appModel), cmd
}

func TestNewAppModelStartsAtProjectList(t *testing.T) {
	m := newAppModel(testApp(t))

	require.Len(t, m.viewStack, 1)
	assert.Equal(t, ViewProjectList, m.activeView().ID())
}

func TestAppModel_PushAndPop(t *testing.T) {
	m := newAppModel(testApp(t))
	orders := newStubView(ViewOrders, "Purchase orders", "orders view")

	m, cmd := update(t, m, pushViewMsg{view: orders})
	assert.Nil(t, cmd)
	require.Len(t, m.viewStack, 2)
	assert.Equal(t, orders, m.activeView())

	m, _ = update(t, m, popViewMsg{})
	require.Len(t, m.viewStack, 1)

	// The root view is never popped.
	m, _ = update(t, m, popViewMsg{})
	assert.Len(t, m.viewStack, 1)
}

func TestAppModel_EscPopsButFormsCaptureKeys(t *testing.T) {
	m := newAppModel(testApp(t))
	form := newStubView(ViewForm, "New order", "form")
	m, _ = update(t, m, pushViewMsg{view: form})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Len(t, m.viewStack, 2, "esc goes to the form, not the stack")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.False(t, m.quitting)
	assert.Len(t, form.updateSeen, 2)

	orders := newStubView(ViewOrders, "Purchase orders", "orders")
	m.viewStack[1] = orders
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Len(t, m.viewStack, 1)
}

func TestAppModel_WizardCompletePopsFormOnly(t *testing.T) {
	m := newAppModel(testApp(t))
	orders := newStubView(ViewOrders, "Purchase orders", "orders")
	m, _ = update(t, m, pushViewMsg{view: orders})
	m, _ = update(t, m, pushViewMsg{view: newStubView(ViewForm, "Edit", "form")})

	next := showToast("Cancelled.")
	m, cmd := update(t, m, wizardCompleteMsg{nextCmd: next})
	require.Len(t, m.viewStack, 2)
	assert.Equal(t, orders, m.activeView())
	require.NotNil(t, cmd)
	assert.Equal(t, toastMsg{text: "Cancelled."}, cmd())

	// Without a form on top nothing is popped.
	m, _ = update(t, m, wizardCompleteMsg{})
	assert.Len(t, m.viewStack, 2)
}

func TestAppModel_RefreshReachesEveryView(t *testing.T) {
	m := newAppModel(testApp(t))
	a := newStubView(ViewOrders, "Purchase orders", "")
	b := newStubView(ViewOrderDetail, "PO-0001", "")
	m.viewStack = []View{a, b}

	update(t, m, refreshViewMsg{})

	assert.Equal(t, []tea.Msg{refreshViewMsg{}}, a.updateSeen)
	assert.Equal(t, []tea.Msg{refreshViewMsg{}}, b.updateSeen)
}

func TestAppModel_ToastExpiresBySequence(t *testing.T) {
	m := newAppModel(testApp(t))

	m, cmd := update(t, m, toastMsg{text: "Created PO-0001"})
	require.NotNil(t, cmd, "toast schedules its expiry")
	assert.Equal(t, "Created PO-0001", m.toast)

	m, _ = update(t, m, toastMsg{text: "disk full", isErr: true})
	assert.True(t, m.toastErr)

	// The first toast's expiry must not clear the second.
	m, _ = update(t, m, toastExpiredMsg{seq: 1})
	assert.Equal(t, "disk full", m.toast)

	m, _ = update(t, m, toastExpiredMsg{seq: 2})
	assert.Empty(t, m.toast)
	assert.False(t, m.toastErr)
}

func TestAppModel_MutationDone(t *testing.T) {
	m := newAppModel(testApp(t))

	_, cmd := update(t, m, mutationDoneMsg{err: errors.New("vendor is required")})
	require.NotNil(t, cmd)
	assert.Equal(t, toastMsg{text: "vendor is required", isErr: true}, cmd())

	_, cmd = update(t, m, mutationDoneMsg{text: "Deleted PO-0003"})
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	var msgs []tea.Msg
	for _, c := range batch {
		msgs = append(msgs, c())
	}
	assert.Contains(t, msgs, toastMsg{text: "Deleted PO-0003"})
	assert.Contains(t, msgs, refreshViewMsg{})
}

func TestAppModel_ViewLayout(t *testing.T) {
	m := newAppModel(testApp(t))
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 12})
	m.viewStack = []View{
		newStubView(ViewProjectList, "Projects", "projects"),
		newStubView(ViewOrders, "Purchase orders", "table body"),
	}

	out := ansi.Strip(m.View())
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 12)
	assert.Contains(t, lines[0], "sitedesk › Projects › Purchase orders")
	assert.Contains(t, out, "table body")
	assert.Contains(t, lines[len(lines)-1], "esc: back")
	assert.Contains(t, lines[len(lines)-1], "q: quit")

	m.toast = "Saved"
	out = ansi.Strip(m.View())
	assert.Contains(t, out, "✔ Saved")
	assert.NotContains(t, out, "q: quit")
}
