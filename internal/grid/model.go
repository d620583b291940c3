package grid

import (
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// holdExpiredMsg ends a loading hold. Stale generations are ignored.
type holdExpiredMsg struct {
	id  int
	gen int
}

// Model is the table component. It only reflects the rows it is given; the
// parent fetches pages and feeds them in with SetRows.
type Model struct {
	id      int
	columns []Column
	rows    []Row
	sorted  []Row
	sort    SortConfig
	onSort  func(SortConfig) tea.Cmd

	cursor  int
	sortCol int

	page    Pagination
	actions Actions
	keys    KeyMap
	styles  Styles

	gate    LoadingGate
	spinner spinner.Model
	pager   paginator.Model

	emptyText string
}

// Option configures a Model.
type Option func(*Model)

func WithActions(a Actions) Option { return func(m *Model) { m.actions = a } }

func WithClock(c Clock) Option {
	return func(m *Model) { m.gate = NewLoadingGate(c, MinLoadingDisplay) }
}

func WithKeyMap(k KeyMap) Option { return func(m *Model) { m.keys = k } }

func WithStyles(s Styles) Option { return func(m *Model) { m.styles = s } }

func WithEmptyText(s string) Option { return func(m *Model) { m.emptyText = s } }

func WithSort(cfg SortConfig) Option { return func(m *Model) { m.sort = cfg } }

// WithSortChange registers a callback that runs after the user changes the
// sort, so callers can persist it.
func WithSortChange(fn func(SortConfig) tea.Cmd) Option {
	return func(m *Model) { m.onSort = fn }
}

// New builds a table over columns.
func New(columns []Column, opts ...Option) Model {
	p := paginator.New()
	p.Type = paginator.Arabic
	p.PerPage = 1
	p.ArabicFormat = "Page %d of %d"

	m := Model{
		id:        nextID(),
		columns:   columns,
		keys:      DefaultKeyMap(),
		styles:    DefaultStyles(),
		gate:      NewLoadingGate(SystemClock{}, MinLoadingDisplay),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		pager:     p,
		emptyText: "No records found.",
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.spinner.Style = m.styles.Spinner
	m.syncSortCol()
	m.syncPager()
	return m
}

// SetRows replaces the rows and re-applies the current sort.
func (m *Model) SetRows(rows []Row) {
	m.rows = rows
	m.sorted = SortRows(rows, m.sort)
	m.clampCursor()
}

// Rows returns the rows in display order.
func (m Model) Rows() []Row { return m.sorted }

// SetSort replaces the sort state from outside the table.
func (m *Model) SetSort(cfg SortConfig) {
	m.sort = cfg
	m.sorted = SortRows(m.rows, cfg)
	m.syncSortCol()
}

func (m Model) Sort() SortConfig { return m.sort }

func (m *Model) SetPagination(p Pagination) {
	m.page = p
	m.syncPager()
}

func (m Model) Pagination() Pagination { return m.page }

func (m *Model) SetActions(a Actions) { m.actions = a }

// SetLoading forwards the caller's loading flag to the gate and returns the
// commands that animate the spinner or end the hold.
func (m *Model) SetLoading(loading bool) tea.Cmd {
	wasActive := m.gate.Active()
	hold := m.gate.Set(loading)
	if loading {
		if wasActive {
			return nil
		}
		return m.spinner.Tick
	}
	if hold == 0 {
		return nil
	}
	id, gen := m.id, m.gate.Generation()
	return tea.Tick(hold, func(time.Time) tea.Msg {
		return holdExpiredMsg{id: id, gen: gen}
	})
}

// Loading reports whether the loading indicator is shown.
func (m Model) Loading() bool { return m.gate.Active() }

func (m Model) Cursor() int { return m.cursor }

// SelectedRow returns the row under the cursor.
func (m Model) SelectedRow() (Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.sorted) {
		return nil, false
	}
	return m.sorted[m.cursor], true
}

// SortColumn is the index of the column the sort key acts on.
func (m Model) SortColumn() int { return m.sortCol }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case holdExpiredMsg:
		if msg.id == m.id && msg.gen == m.gate.Generation() {
			// Drop the hold in case the tick fired slightly early.
			m.gate.until = time.Time{}
		}
		return m, nil

	case spinner.TickMsg:
		if !m.gate.Active() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.sorted)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.SortLeft):
		if m.sortCol > 0 {
			m.sortCol--
		}
	case key.Matches(msg, m.keys.SortRight):
		if m.sortCol < len(m.columns)-1 {
			m.sortCol++
		}
	case key.Matches(msg, m.keys.Sort):
		if len(m.columns) == 0 {
			return m, nil
		}
		m.SetSort(m.sort.Toggle(m.columns[m.sortCol].Key))
		if m.onSort != nil {
			return m, m.onSort(m.sort)
		}
	case key.Matches(msg, m.keys.NextPage):
		return m, m.page.request(m.page.current() + 1)
	case key.Matches(msg, m.keys.PrevPage):
		return m, m.page.request(m.page.current() - 1)
	case key.Matches(msg, m.keys.View):
		return m, m.rowAction(m.actions.View)
	case key.Matches(msg, m.keys.Edit):
		return m, m.rowAction(m.actions.Edit)
	case key.Matches(msg, m.keys.Delete):
		return m, m.rowAction(m.actions.Delete)
	case key.Matches(msg, m.keys.Select):
		return m, m.rowAction(m.actions.Select)
	case key.Matches(msg, m.keys.Add):
		if m.actions.Add != nil {
			return m, m.actions.Add()
		}
	case key.Matches(msg, m.keys.Filter):
		if m.actions.Filter != nil {
			return m, m.actions.Filter()
		}
	}
	return m, nil
}

func (m Model) rowAction(fn func(Row) tea.Cmd) tea.Cmd {
	if fn == nil {
		return nil
	}
	row, ok := m.SelectedRow()
	if !ok {
		return nil
	}
	return fn(row)
}

// ShortHelp lists the bindings that currently do something.
func (m Model) ShortHelp() []key.Binding {
	b := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Sort}
	if m.page.total() > 1 {
		b = append(b, m.keys.NextPage, m.keys.PrevPage)
	}
	if m.actions.Select != nil {
		b = append(b, m.keys.Select)
	}
	if m.actions.View != nil {
		b = append(b, m.keys.View)
	}
	if m.actions.Edit != nil {
		b = append(b, m.keys.Edit)
	}
	if m.actions.Delete != nil {
		b = append(b, m.keys.Delete)
	}
	if m.actions.Add != nil {
		b = append(b, m.keys.Add)
	}
	if m.actions.Filter != nil {
		b = append(b, m.keys.Filter)
	}
	return b
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.sorted) {
		m.cursor = len(m.sorted) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) syncSortCol() {
	for i, c := range m.columns {
		if c.Key == m.sort.Key {
			m.sortCol = i
			return
		}
	}
}

func (m *Model) syncPager() {
	m.pager.TotalPages = m.page.total()
	m.pager.Page = m.page.current() - 1
}
