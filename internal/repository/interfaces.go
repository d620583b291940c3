package repository

import (
	"context"

	"github.com/alexanderramin/sitedesk/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type WBSNodeRepo interface {
	Create(ctx context.Context, n *domain.WBSNode) error
	GetByID(ctx context.Context, id string) (*domain.WBSNode, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.WBSNode, error)
	Update(ctx context.Context, n *domain.WBSNode) error
	DeleteByProject(ctx context.Context, projectID string) error
}

// OrderFilter narrows a purchase order listing. Zero values match everything.
type OrderFilter struct {
	// Search matches number, vendor or material, case-insensitively.
	Search string
	Status domain.OrderStatus
}

type PurchaseOrderRepo interface {
	Create(ctx context.Context, po *domain.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*domain.PurchaseOrder, error)
	GetByNumber(ctx context.Context, projectID, number string) (*domain.PurchaseOrder, error)
	// List returns at most limit orders after skipping offset, newest order
	// date first.
	List(ctx context.Context, projectID string, f OrderFilter, limit, offset int) ([]*domain.PurchaseOrder, error)
	Count(ctx context.Context, projectID string, f OrderFilter) (int, error)
	NextNumber(ctx context.Context, projectID string) (string, error)
	Update(ctx context.Context, po *domain.PurchaseOrder) error
	Delete(ctx context.Context, id string) error
}
