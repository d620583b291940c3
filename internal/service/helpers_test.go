package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/sitedesk/internal/db"
	"github.com/alexanderramin/sitedesk/internal/repository"
	"github.com/alexanderramin/sitedesk/internal/testutil"
)

// recordingObserver keeps every use-case event for assertions.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}

type testServices struct {
	db       *sql.DB
	projects *repository.SQLiteProjectRepo
	nodes    *repository.SQLiteWBSNodeRepo
	orders   *repository.SQLitePurchaseOrderRepo
	observer *recordingObserver
	projSvc  ProjectService
	schedSvc ScheduleService
	orderSvc PurchaseOrderService
}

func setupServices(t *testing.T) *testServices {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database)
	ts := &testServices{
		db:       database,
		projects: repository.NewSQLiteProjectRepo(database),
		nodes:    repository.NewSQLiteWBSNodeRepo(database),
		orders:   repository.NewSQLitePurchaseOrderRepo(database),
		observer: &recordingObserver{},
	}
	ts.projSvc = NewProjectService(ts.projects, ts.observer)
	ts.schedSvc = NewScheduleService(ts.projects, ts.nodes, uow, ts.observer)
	ts.orderSvc = NewPurchaseOrderService(ts.orders, uow, ts.observer)
	return ts
}
