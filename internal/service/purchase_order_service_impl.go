package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/sitedesk/internal/db"
	"github.com/alexanderramin/sitedesk/internal/domain"
	"github.com/alexanderramin/sitedesk/internal/grid"
	"github.com/alexanderramin/sitedesk/internal/repository"
	"github.com/google/uuid"
)

type purchaseOrderService struct {
	orders   repository.PurchaseOrderRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewPurchaseOrderService(
	orders repository.PurchaseOrderRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) PurchaseOrderService {
	return &purchaseOrderService{
		orders:   orders,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Create validates po, fills in defaults and allocates the next order number
// when none was given.
func (s *purchaseOrderService) Create(ctx context.Context, po *domain.PurchaseOrder) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project_id": po.ProjectID}
	defer func() { observe(ctx, s.observer, "create-purchase-order", startedAt, fields, err) }()

	if po.Status == "" {
		po.Status = domain.OrderDraft
	}
	if po.OrderDate.IsZero() {
		po.OrderDate = time.Now().UTC().Truncate(24 * time.Hour)
	}
	if err = po.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if po.ID == "" {
		po.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	po.CreatedAt = now
	po.UpdatedAt = now

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txOrders := repository.NewSQLitePurchaseOrderRepo(tx)
		if po.Number == "" {
			number, err := txOrders.NextNumber(ctx, po.ProjectID)
			if err != nil {
				return err
			}
			po.Number = number
		}
		return txOrders.Create(ctx, po)
	})
	fields["number"] = po.Number
	return err
}

func (s *purchaseOrderService) Get(ctx context.Context, id string) (*domain.PurchaseOrder, error) {
	return s.orders.GetByID(ctx, id)
}

func (s *purchaseOrderService) Resolve(ctx context.Context, projectID, ref string) (*domain.PurchaseOrder, error) {
	po, err := s.orders.GetByNumber(ctx, projectID, ref)
	if err == nil || !errors.Is(err, repository.ErrNotFound) {
		return po, err
	}
	po, err = s.orders.GetByID(ctx, ref)
	if err != nil {
		return nil, err
	}
	if po.ProjectID != projectID {
		return nil, fmt.Errorf("purchase order %s: %w", ref, repository.ErrNotFound)
	}
	return po, nil
}

// Page returns page (1-based) of the project's orders. Pages past the end
// are clamped to the last page.
func (s *purchaseOrderService) Page(ctx context.Context, projectID string, page int, f repository.OrderFilter) (result *OrderPage, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project_id": projectID, "page": page}
	defer func() { observe(ctx, s.observer, "list-purchase-orders", startedAt, fields, err) }()

	total, err := s.orders.Count(ctx, projectID, f)
	if err != nil {
		return nil, err
	}
	totalPages := (total + grid.PageSize - 1) / grid.PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	orders, err := s.orders.List(ctx, projectID, f, grid.PageSize, (page-1)*grid.PageSize)
	if err != nil {
		return nil, err
	}
	fields["total"] = total
	return &OrderPage{Orders: orders, Page: page, TotalPages: totalPages, Total: total}, nil
}

func (s *purchaseOrderService) Update(ctx context.Context, po *domain.PurchaseOrder) (err error) {
	startedAt := time.Now().UTC()
	defer func() { observe(ctx, s.observer, "update-purchase-order", startedAt, map[string]any{"id": po.ID}, err) }()

	if err = po.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	po.UpdatedAt = time.Now().UTC()
	return s.orders.Update(ctx, po)
}

func (s *purchaseOrderService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	defer func() { observe(ctx, s.observer, "delete-purchase-order", startedAt, map[string]any{"id": id}, err) }()
	return s.orders.Delete(ctx, id)
}
