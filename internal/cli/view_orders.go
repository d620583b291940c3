package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/sitedesk/internal/cli/formatter"
	"github.com/alexanderramin/sitedesk/internal/domain"
	"github.com/alexanderramin/sitedesk/internal/grid"
	"github.com/alexanderramin/sitedesk/internal/repository"
	"github.com/alexanderramin/sitedesk/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ordersLoadedMsg carries one page of orders. seq ties it to the request
// that produced it.
type ordersLoadedMsg struct {
	seq  int
	page *service.OrderPage
	err  error
}

// pageRequestMsg is emitted by the grid's pagination callback.
type pageRequestMsg struct {
	page int
}

// orderFilterMsg applies a filter chosen in the filter form.
type orderFilterMsg struct {
	filter repository.OrderFilter
}

// ordersView lists a project's purchase orders one page at a time.
type ordersView struct {
	state   *SharedState
	project *domain.Project

	table  grid.Model
	page   int
	total  int
	filter repository.OrderFilter

	// seq increases with every load; responses for older loads are dropped.
	seq int
}

func newOrdersView(state *SharedState, p *domain.Project) *ordersView {
	app := state.App
	v := &ordersView{state: state, project: p, page: 1}

	opts := []grid.Option{
		grid.WithClock(app.clock()),
		grid.WithStyles(orderTableStyles()),
		grid.WithEmptyText("No purchase orders yet. Press a to add one."),
		grid.WithSortChange(func(cfg grid.SortConfig) tea.Cmd {
			if app.State == nil {
				return nil
			}
			return func() tea.Msg {
				if err := app.State.SaveSort(ordersTable, cfg); err != nil {
					return toastMsg{text: "saving sort: " + err.Error(), isErr: true}
				}
				return nil
			}
		}),
	}
	if app.State != nil {
		if cfg, ok, err := app.State.Sort(ordersTable); err == nil && ok {
			opts = append(opts, grid.WithSort(cfg))
		}
	}

	v.table = grid.New(orderColumns(), opts...)
	v.table.SetActions(v.actions())
	v.syncPagination()
	return v
}

func (v *ordersView) ID() ViewID    { return ViewOrders }
func (v *ordersView) Title() string { return "Purchase orders" }

func (v *ordersView) ShortHelp() []key.Binding {
	return v.table.ShortHelp()
}

func (v *ordersView) Init() tea.Cmd {
	return v.load()
}

func (v *ordersView) actions() grid.Actions {
	app := v.state.App
	projectID := v.project.ID
	return grid.Actions{
		Select: func(r grid.Row) tea.Cmd {
			po, ok := orderFromRow(r)
			if !ok {
				return nil
			}
			return pushView(newOrderDetailView(v.state, po))
		},
		View: func(r grid.Row) tea.Cmd {
			po, ok := orderFromRow(r)
			if !ok {
				return nil
			}
			return pushView(newOrderDetailView(v.state, po))
		},
		Edit: func(r grid.Row) tea.Cmd {
			po, ok := orderFromRow(r)
			if !ok {
				return nil
			}
			return editOrderWizard(app, po)
		},
		Delete: func(r grid.Row) tea.Cmd {
			po, ok := orderFromRow(r)
			if !ok {
				return nil
			}
			var confirmed bool
			form := confirmForm(fmt.Sprintf("Delete %s (%s)?", po.Number, po.Material), &confirmed)
			return startWizard("Delete "+po.Number, form, func() tea.Cmd {
				if !confirmed {
					return showToast("Kept " + po.Number)
				}
				return deleteOrderCmd(app, po)
			})
		},
		Add: func() tea.Cmd {
			values := &orderFormValues{}
			return startWizard("New order", orderForm(values), func() tea.Cmd {
				return createOrderCmd(app, projectID, values)
			})
		},
		Filter: func() tea.Cmd {
			values := &orderFilterValues{Search: v.filter.Search, Status: string(v.filter.Status)}
			return startWizard("Filter", orderFilterForm(values), func() tea.Cmd {
				f := values.filter()
				return func() tea.Msg { return orderFilterMsg{filter: f} }
			})
		},
	}
}

// editOrderWizard opens the order form prefilled with po.
func editOrderWizard(app *App, po *domain.PurchaseOrder) tea.Cmd {
	values := orderFormFrom(po)
	return startWizard("Edit "+po.Number, orderForm(values), func() tea.Cmd {
		return updateOrderCmd(app, po, values)
	})
}

// load fetches the current page and raises the table's loading indicator.
func (v *ordersView) load() tea.Cmd {
	v.seq++
	seq, page, filter := v.seq, v.page, v.filter
	app, projectID := v.state.App, v.project.ID

	spin := v.table.SetLoading(true)
	fetch := func() tea.Msg {
		res, err := app.Orders.Page(context.Background(), projectID, page, filter)
		return ordersLoadedMsg{seq: seq, page: res, err: err}
	}
	return tea.Batch(spin, fetch)
}

func (v *ordersView) syncPagination() {
	v.table.SetPagination(grid.Pagination{
		Current: v.page,
		Total:   v.total,
		OnChange: func(page int) tea.Cmd {
			return func() tea.Msg { return pageRequestMsg{page: page} }
		},
	})
}

func (v *ordersView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ordersLoadedMsg:
		if msg.seq != v.seq {
			return v, nil
		}
		hold := v.table.SetLoading(false)
		if msg.err != nil {
			// Keep the rows already on screen.
			return v, tea.Batch(hold, showError(msg.err))
		}
		v.page = msg.page.Page
		v.total = msg.page.TotalPages
		v.table.SetRows(orderRows(msg.page.Orders))
		v.syncPagination()
		return v, hold

	case pageRequestMsg:
		v.page = msg.page
		v.syncPagination()
		return v, v.load()

	case orderFilterMsg:
		v.filter = msg.filter
		v.page = 1
		v.syncPagination()
		return v, v.load()

	case refreshViewMsg:
		return v, v.load()
	}

	var cmd tea.Cmd
	v.table, cmd = v.table.Update(msg)
	return v, cmd
}

func (v *ordersView) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + formatter.StyleHeader.Render(v.project.Name))
	if f := v.filterLabel(); f != "" {
		b.WriteString("  " + formatter.StyleYellow.Render("/") + " " + f)
	}
	b.WriteString("\n\n")
	b.WriteString(v.table.View())
	return b.String()
}

func (v *ordersView) filterLabel() string {
	var parts []string
	if v.filter.Search != "" {
		parts = append(parts, fmt.Sprintf("%q", v.filter.Search))
	}
	if v.filter.Status != "" {
		parts = append(parts, "status "+string(v.filter.Status))
	}
	return strings.Join(parts, ", ")
}
