package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/sitedesk/internal/db"
	"github.com/alexanderramin/sitedesk/internal/domain"
	"github.com/alexanderramin/sitedesk/internal/grid"
	"github.com/alexanderramin/sitedesk/internal/repository"
	"github.com/alexanderramin/sitedesk/internal/service"
	"github.com/alexanderramin/sitedesk/internal/testutil"
	"github.com/alexanderramin/sitedesk/internal/uistate"
	"github.com/alexanderramin/sitedesk/internal/wbs"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepClock is a manually advanced clock for loading holds and date badges.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stepClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

// testApp wires a full App backed by an in-memory DB and a temp state dir.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database)

	projRepo := repository.NewSQLiteProjectRepo(database)
	nodeRepo := repository.NewSQLiteWBSNodeRepo(database)
	orderRepo := repository.NewSQLitePurchaseOrderRepo(database)

	return &App{
		Projects:  service.NewProjectService(projRepo),
		Schedules: service.NewScheduleService(projRepo, nodeRepo, uow),
		Orders:    service.NewPurchaseOrderService(orderRepo, uow),
		State:     uistate.Open(t.TempDir()),
		Clock:     &stepClock{now: testNow},
	}
}

// nestedSchedule has a row index on every node so collapsing hides the
// whole subtree.
const nestedSchedule = `{
  "project": {"short_id": "VIA01", "name": "Viaduct P1-P40", "client": "MMRDA", "start_date": "2026-01-05"},
  "schedule": [
    {"row_index": 1, "name": "Substructure", "items": [
      {"row_index": 2, "name": "Pile caps", "unit": "cum", "quantity": 300, "completed_quantity": 120, "tasks": [
        {"row_index": 3, "name": "P1-P10", "unit": "cum", "quantity": 100, "completed_quantity": 100, "status": "completed"},
        {"row_index": 4, "name": "P11-P20", "unit": "cum", "quantity": 100, "completed_quantity": 20, "end_date": "2026-03-01"}
      ]}
    ]},
    {"row_index": 5, "name": "Superstructure", "items": [
      {"row_index": 6, "name": "Segment casting", "unit": "nos", "quantity": 480}
    ]}
  ]
}`

func writeSchedule(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schedule.json")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

// seedSchedule imports nestedSchedule and returns its project.
func seedSchedule(t *testing.T, app *App) *domain.Project {
	t.Helper()
	res, err := app.Schedules.ImportFile(context.Background(), "", writeSchedule(t, nestedSchedule))
	require.NoError(t, err)
	return res.Project
}

// seedOrders creates n orders for p, numbered PO-0001 upwards, with order
// dates one day apart so PO-0001 is the oldest.
func seedOrders(t *testing.T, app *App, p *domain.Project, n int) []*domain.PurchaseOrder {
	t.Helper()
	var out []*domain.PurchaseOrder
	for i := range n {
		po := &domain.PurchaseOrder{
			ProjectID: p.ID,
			Vendor:    "Vendor " + string(rune('A'+i%26)),
			Material:  "TMT bars 12mm",
			Unit:      "MT",
			Quantity:  float64(10 + i),
			Rate:      58000,
			Status:    domain.OrderIssued,
			OrderDate: testNow.AddDate(0, 0, -n+i).Truncate(24 * time.Hour),
		}
		require.NoError(t, app.Orders.Create(context.Background(), po))
		out = append(out, po)
	}
	return out
}

// executeCmd runs a cobra command and captures stdout/stderr without styling.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return ansi.Strip(buf.String()), err
}

// --- root ---

func TestRootCmd_NonInteractiveShowsHelp(t *testing.T) {
	app := testApp(t)
	app.IsInteractive = func() bool { return false }

	out, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, out, "sitedesk")
	assert.Contains(t, out, "schedule")
	assert.Contains(t, out, "po")
}

// --- project ---

func TestProjectAdd_RequiresFlags(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "project", "add", "--client", "MMRDA")
	require.Error(t, err)
	assert.Equal(t, "required: --id, --name", err.Error())
}

func TestProjectAdd_AndList(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "project", "add",
		"--id", "met04", "--name", "Metro Line 4", "--client", "MMRDA",
		"--start", "2026-01-01", "--target", "2027-06-30")
	require.NoError(t, err)
	assert.Contains(t, out, "Created project Metro Line 4 [MET04]")

	p, err := app.Projects.Resolve(context.Background(), "MET04")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-01", p.StartDate.Format(dateLayout))
	require.NotNil(t, p.TargetDate)

	out, err = executeCmd(t, app, "project", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "MET04")
	assert.Contains(t, out, "Metro Line 4")
}

func TestProjectAdd_BadDate(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "project", "add", "--id", "MET05", "--name", "X", "--start", "01/02/2026")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --start")
}

func TestProjectShow_Summary(t *testing.T) {
	app := testApp(t)
	seedSchedule(t, app)

	out, err := executeCmd(t, app, "project", "show", "via01")
	require.NoError(t, err)
	assert.Contains(t, out, "Viaduct P1-P40")
	assert.Contains(t, out, "MMRDA")
}

func TestProjectShow_NotFound(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "project", "show", "NOPE99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `project not found: "NOPE99"`)
}

func TestResolveProject_UUIDPrefix(t *testing.T) {
	app := testApp(t)
	p := seedSchedule(t, app)

	got, err := resolveProject(context.Background(), app, p.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
}

// --- schedule ---

func TestScheduleImport_CreatesProject(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "schedule", "import", writeSchedule(t, nestedSchedule))
	require.NoError(t, err)
	assert.Contains(t, out, "Created project Viaduct P1-P40 [VIA01]")
	assert.Contains(t, out, "Imported 6 rows (6 nodes) into VIA01")
}

func TestScheduleImport_IntoExistingProject(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "project", "add", "--id", "TWR01", "--name", "Tower A")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "schedule", "import", "--project", "TWR01", writeSchedule(t, nestedSchedule))
	require.NoError(t, err)
	assert.NotContains(t, out, "Created project")
	assert.Contains(t, out, "into TWR01")
}

func TestScheduleImport_ValidationError(t *testing.T) {
	app := testApp(t)
	bad := `{"project": {"short_id": "BAD01", "name": "Bad", "start_date": "2026-01-01"},
	  "schedule": [{"row_index": 1, "name": "A"}, {"row_index": 1, "name": "B"}]}`

	_, err := executeCmd(t, app, "schedule", "import", writeSchedule(t, bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row_index 1 already used")
}

func TestScheduleShow_TableAndTree(t *testing.T) {
	app := testApp(t)
	p := seedSchedule(t, app)

	out, err := executeCmd(t, app, "schedule", "show", "VIA01")
	require.NoError(t, err)
	assert.Contains(t, out, "Pile caps")
	assert.Contains(t, out, "Segment casting")

	rows, err := app.Schedules.Rows(context.Background(), p.ID)
	require.NoError(t, err)
	state := wbsStateWithout(rows, "Substructure")
	require.NoError(t, app.State.SaveExpandState(p.ID, state))

	out, err = executeCmd(t, app, "schedule", "show", "VIA01", "--tree")
	require.NoError(t, err)
	assert.Contains(t, out, "Substructure (+3)")
	assert.NotContains(t, out, "Pile caps")
	assert.Contains(t, out, "3 collapsed rows hidden")
}

func TestScheduleImport_ReplacingDropsSavedExpansion(t *testing.T) {
	app := testApp(t)
	p := seedSchedule(t, app)
	rows, err := app.Schedules.Rows(context.Background(), p.ID)
	require.NoError(t, err)
	require.NoError(t, app.State.SaveExpandState(p.ID, wbsStateWithout(rows, "Substructure")))

	_, err = executeCmd(t, app, "schedule", "import", "--project", "VIA01", writeSchedule(t, nestedSchedule))
	require.NoError(t, err)

	_, ok, err := app.State.ExpandState(p.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestScheduleProgress(t *testing.T) {
	app := testApp(t)
	seedSchedule(t, app)

	out, err := executeCmd(t, app, "schedule", "progress", "VIA01", "6", "48")
	require.NoError(t, err)
	assert.Contains(t, out, "Row 6 Segment casting: 48 of 480 nos done (in_progress)")

	_, err = executeCmd(t, app, "schedule", "progress", "VIA01", "6", "500")
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = executeCmd(t, app, "schedule", "progress", "VIA01", "99", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schedule row 99 not found")
}

// --- po ---

func TestPOAdd_AllocatesNumber(t *testing.T) {
	app := testApp(t)
	seedSchedule(t, app)

	out, err := executeCmd(t, app, "po", "add", "VIA01",
		"--vendor", "JSW Steel", "--material", "TMT bars 16mm", "--unit", "MT",
		"--qty", "25", "--rate", "61000", "--status", "issued", "--date", "2026-03-01")
	require.NoError(t, err)
	assert.Contains(t, out, "Created PO-0001: TMT bars 16mm from JSW Steel, ₹15,25,000.00")

	out, err = executeCmd(t, app, "po", "show", "VIA01", "po-0001")
	require.NoError(t, err)
	assert.Contains(t, out, "JSW Steel")
	assert.Contains(t, out, "01 Mar 2026")
}

func TestPOAdd_InvalidStatus(t *testing.T) {
	app := testApp(t)
	seedSchedule(t, app)

	_, err := executeCmd(t, app, "po", "add", "VIA01", "--vendor", "V", "--material", "M", "--status", "lost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid --status "lost"`)
}

func TestPOList_Pages(t *testing.T) {
	app := testApp(t)
	p := seedSchedule(t, app)
	seedOrders(t, app, p, 12)

	out, err := executeCmd(t, app, "po", "list", "VIA01")
	require.NoError(t, err)
	assert.Contains(t, out, "Page 1 of 2 · 12 orders")
	assert.Contains(t, out, "PO-0012")
	assert.NotContains(t, out, "PO-0002")

	out, err = executeCmd(t, app, "po", "list", "VIA01", "-p", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Page 2 of 2 · 12 orders")
	assert.Contains(t, out, "PO-0001")
}

func TestPOList_SortFlags(t *testing.T) {
	app := testApp(t)
	p := seedSchedule(t, app)
	seedOrders(t, app, p, 3)

	out, err := executeCmd(t, app, "po", "list", "VIA01", "--sort", "quantity")
	require.NoError(t, err)
	assert.Less(t, indexOf(out, "PO-0001"), indexOf(out, "PO-0003"))
	assert.Contains(t, out, "Qty ▲")

	_, err = executeCmd(t, app, "po", "list", "VIA01", "--sort", "colour")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown sort column "colour"`)
}

func TestPOList_UsesSavedSort(t *testing.T) {
	app := testApp(t)
	p := seedSchedule(t, app)
	seedOrders(t, app, p, 3)
	require.NoError(t, app.State.SaveSort(ordersTable, grid.SortConfig{Key: "quantity", Direction: grid.Desc}))

	out, err := executeCmd(t, app, "po", "list", "VIA01")
	require.NoError(t, err)
	assert.Contains(t, out, "Qty ▼")
	assert.Less(t, indexOf(out, "PO-0003"), indexOf(out, "PO-0001"))
}

func TestPOList_SearchEmpty(t *testing.T) {
	app := testApp(t)
	p := seedSchedule(t, app)
	seedOrders(t, app, p, 2)

	out, err := executeCmd(t, app, "po", "list", "VIA01", "-s", "cement")
	require.NoError(t, err)
	assert.Contains(t, out, "No records found.")
	assert.Contains(t, out, "Page 1 of 1 · 0 orders")
}

func TestPORemove(t *testing.T) {
	app := testApp(t)
	p := seedSchedule(t, app)
	seedOrders(t, app, p, 2)

	out, err := executeCmd(t, app, "po", "rm", "VIA01", "PO-0002")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted PO-0002")

	_, err = executeCmd(t, app, "po", "show", "VIA01", "PO-0002")
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// wbsStateWithout is the default expansion with the named row collapsed.
func wbsStateWithout(rows []wbs.Row, name string) wbs.ExpandState {
	state := wbs.DefaultExpanded(rows)
	for _, r := range rows {
		if r.Name == name {
			state.Collapse(r.ID)
		}
	}
	return state
}

func indexOf(s, sub string) int {
	return strings.Index(s, sub)
}
