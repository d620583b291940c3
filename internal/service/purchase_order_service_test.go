package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/sitedesk/internal/domain"
	"github.com/alexanderramin/sitedesk/internal/repository"
	"github.com/alexanderramin/sitedesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProject(t *testing.T, ts *testServices) *domain.Project {
	t.Helper()
	p := testutil.NewTestProject("Depot")
	require.NoError(t, ts.projects.Create(context.Background(), p))
	return p
}

func TestPurchaseOrderService_CreateAssignsNumberAndDefaults(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()
	p := seedProject(t, ts)

	first := &domain.PurchaseOrder{ProjectID: p.ID, Vendor: "ACC", Material: "Cement", Quantity: 200, Rate: 390}
	require.NoError(t, ts.orderSvc.Create(ctx, first))
	assert.Equal(t, "PO-0001", first.Number)
	assert.Equal(t, domain.OrderDraft, first.Status)
	assert.False(t, first.OrderDate.IsZero())

	second := &domain.PurchaseOrder{ProjectID: p.ID, Vendor: "ACC", Material: "Cement", OrderDate: first.OrderDate}
	require.NoError(t, ts.orderSvc.Create(ctx, second))
	assert.Equal(t, "PO-0002", second.Number)

	ev := ts.observer.last()
	assert.Equal(t, "create-purchase-order", ev.Name)
	assert.Equal(t, "PO-0002", ev.Fields["number"])
}

func TestPurchaseOrderService_CreateRejectsInvalid(t *testing.T) {
	ts := setupServices(t)
	p := seedProject(t, ts)

	err := ts.orderSvc.Create(context.Background(), &domain.PurchaseOrder{ProjectID: p.ID, Material: "Sand"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorContains(t, err, "vendor is required")
}

func TestPurchaseOrderService_Page(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()
	p := seedProject(t, ts)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 23; i++ {
		po := testutil.NewTestPurchaseOrder(p.ID,
			testutil.WithOrderNumber(fmt.Sprintf("PO-%04d", i+1)),
			testutil.WithOrderDate(base.AddDate(0, 0, i)))
		require.NoError(t, ts.orders.Create(ctx, po))
	}

	page, err := ts.orderSvc.Page(ctx, p.ID, 1, repository.OrderFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 23, page.Total)
	assert.Len(t, page.Orders, 10)

	page, err = ts.orderSvc.Page(ctx, p.ID, 3, repository.OrderFilter{})
	require.NoError(t, err)
	assert.Len(t, page.Orders, 3)
	assert.Equal(t, "PO-0001", page.Orders[2].Number)

	page, err = ts.orderSvc.Page(ctx, p.ID, 9, repository.OrderFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Page, "clamped to last page")

	page, err = ts.orderSvc.Page(ctx, p.ID, 1, repository.OrderFilter{Search: "nothing matches"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalPages)
	assert.Empty(t, page.Orders)
}

func TestPurchaseOrderService_UpdateAndDelete(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()
	p := seedProject(t, ts)

	po := testutil.NewTestPurchaseOrder(p.ID)
	require.NoError(t, ts.orders.Create(ctx, po))

	po.Status = domain.OrderPartial
	require.NoError(t, ts.orderSvc.Update(ctx, po))
	got, err := ts.orderSvc.Get(ctx, po.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPartial, got.Status)

	po.Vendor = ""
	assert.ErrorIs(t, ts.orderSvc.Update(ctx, po), ErrInvalidInput)

	require.NoError(t, ts.orderSvc.Delete(ctx, po.ID))
	_, err = ts.orderSvc.Get(ctx, po.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPurchaseOrderService_Resolve(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()
	p := seedProject(t, ts)
	other := testutil.NewTestProject("Other")
	require.NoError(t, ts.projects.Create(ctx, other))

	po := testutil.NewTestPurchaseOrder(p.ID, testutil.WithOrderNumber("PO-0042"))
	require.NoError(t, ts.orders.Create(ctx, po))

	got, err := ts.orderSvc.Resolve(ctx, p.ID, "po-0042")
	require.NoError(t, err)
	assert.Equal(t, po.ID, got.ID)

	got, err = ts.orderSvc.Resolve(ctx, p.ID, po.ID)
	require.NoError(t, err)
	assert.Equal(t, "PO-0042", got.Number)

	_, err = ts.orderSvc.Resolve(ctx, other.ID, po.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound, "order of another project")
	_, err = ts.orderSvc.Resolve(ctx, p.ID, "PO-9999")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
