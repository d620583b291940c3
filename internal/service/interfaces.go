package service

import (
	"context"

	"github.com/alexanderramin/sitedesk/internal/domain"
	"github.com/alexanderramin/sitedesk/internal/importer"
	"github.com/alexanderramin/sitedesk/internal/repository"
	"github.com/alexanderramin/sitedesk/internal/wbs"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	// Resolve accepts a short ID (case-insensitive) or a full UUID.
	Resolve(ctx context.Context, ref string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

// ImportResult holds the outcome of a schedule import.
type ImportResult struct {
	Project   *domain.Project
	Created   bool
	NodeCount int
	RowCount  int
}

type ScheduleService interface {
	// Import stores the schedule for projectID, replacing any existing one.
	// With an empty projectID the file's project section creates a new
	// project.
	Import(ctx context.Context, projectID string, s *importer.ScheduleImport) (*ImportResult, error)
	ImportFile(ctx context.Context, projectID, path string) (*ImportResult, error)
	Tree(ctx context.Context, projectID string) ([]wbs.Node, error)
	Rows(ctx context.Context, projectID string) ([]wbs.Row, error)
	UpdateProgress(ctx context.Context, nodeID string, done float64) (*domain.WBSNode, error)
}

// OrderPage is one page of purchase orders.
type OrderPage struct {
	Orders     []*domain.PurchaseOrder
	Page       int
	TotalPages int
	Total      int
}

type PurchaseOrderService interface {
	Create(ctx context.Context, po *domain.PurchaseOrder) error
	Get(ctx context.Context, id string) (*domain.PurchaseOrder, error)
	// Resolve finds an order of the project by number (PO-0007) or ID.
	Resolve(ctx context.Context, projectID, ref string) (*domain.PurchaseOrder, error)
	Page(ctx context.Context, projectID string, page int, f repository.OrderFilter) (*OrderPage, error)
	Update(ctx context.Context, po *domain.PurchaseOrder) error
	Delete(ctx context.Context, id string) error
}
