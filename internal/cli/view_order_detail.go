package cli

import (
	"context"
	"errors"

	"github.com/alexanderramin/sitedesk/internal/cli/formatter"
	"github.com/alexanderramin/sitedesk/internal/domain"
	"github.com/alexanderramin/sitedesk/internal/repository"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// orderReloadedMsg carries a fresh copy of the order shown in the detail view.
type orderReloadedMsg struct {
	seq   int
	order *domain.PurchaseOrder
	err   error
}

// orderDetailView shows one purchase order. It is constructed with the
// order selected in the table, so it renders without a fetch.
type orderDetailView struct {
	state *SharedState
	order *domain.PurchaseOrder
	vp    viewport.Model
	seq   int
}

func newOrderDetailView(state *SharedState, po *domain.PurchaseOrder) *orderDetailView {
	vp := viewport.New(max(state.Width, 40), state.ContentHeight())
	vp.KeyMap = detailViewportKeyMap()
	v := &orderDetailView{state: state, order: po, vp: vp}
	v.vp.SetContent(formatter.FormatOrderDetail(po))
	return v
}

func (v *orderDetailView) ID() ViewID    { return ViewOrderDetail }
func (v *orderDetailView) Title() string { return v.order.Number }

func (v *orderDetailView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "scroll")),
	}
}

func (v *orderDetailView) Init() tea.Cmd { return nil }

func (v *orderDetailView) reload() tea.Cmd {
	v.seq++
	seq, id, app := v.seq, v.order.ID, v.state.App
	return func() tea.Msg {
		po, err := app.Orders.Get(context.Background(), id)
		return orderReloadedMsg{seq: seq, order: po, err: err}
	}
}

func (v *orderDetailView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.vp.Width = msg.Width
		v.vp.Height = v.state.ContentHeight()
		return v, nil

	case refreshViewMsg:
		return v, v.reload()

	case orderReloadedMsg:
		if msg.seq != v.seq {
			return v, nil
		}
		if errors.Is(msg.err, repository.ErrNotFound) {
			return v, popView()
		}
		if msg.err != nil {
			return v, showError(msg.err)
		}
		v.order = msg.order
		v.vp.SetContent(formatter.FormatOrderDetail(msg.order))
		return v, nil

	case tea.KeyMsg:
		if msg.String() == "e" {
			return v, editOrderWizard(v.state.App, v.order)
		}
		var cmd tea.Cmd
		v.vp, cmd = v.vp.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *orderDetailView) View() string {
	return "\n" + v.vp.View()
}

// detailViewportKeyMap scrolls on arrow and page keys only, leaving letters
// for view bindings.
func detailViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up")),
		Down:         key.NewBinding(key.WithKeys("down")),
	}
}
