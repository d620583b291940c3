package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/sitedesk/internal/domain"
	"github.com/google/uuid"
)

var (
	testShortIDCounter atomic.Int64
	testOrderCounter   atomic.Int64
)

// Project options
type ProjectOption func(*domain.Project)

func WithTargetDate(d time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.TargetDate = &d
	}
}

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithShortID(id string) ProjectOption {
	return func(p *domain.Project) {
		p.ShortID = id
	}
}

func WithClient(client string) ProjectOption {
	return func(p *domain.Project) {
		p.Client = client
	}
}

func defaultShortID(name string) string {
	upper := strings.ToUpper(name)
	var letters []byte
	for i := 0; i < len(upper) && len(letters) < 3; i++ {
		if upper[i] >= 'A' && upper[i] <= 'Z' {
			letters = append(letters, upper[i])
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	n := testShortIDCounter.Add(1)
	return fmt.Sprintf("%s%02d", string(letters), n)
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        uuid.New().String(),
		ShortID:   defaultShortID(name),
		Name:      name,
		Client:    "Test Client",
		Location:  "Pune",
		StartDate: now.AddDate(0, -1, 0),
		Status:    domain.ProjectActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WBS node options
type NodeOption func(*domain.WBSNode)

func WithNodeKind(k domain.NodeKind) NodeOption {
	return func(n *domain.WBSNode) {
		n.Kind = k
	}
}

func WithParentID(id string) NodeOption {
	return func(n *domain.WBSNode) {
		n.ParentID = &id
	}
}

func WithRowIndex(i int) NodeOption {
	return func(n *domain.WBSNode) {
		n.RowIndex = &i
	}
}

func WithOrderIndex(i int) NodeOption {
	return func(n *domain.WBSNode) {
		n.OrderIndex = i
	}
}

func WithQuantities(total, done float64) NodeOption {
	return func(n *domain.WBSNode) {
		n.Quantity = total
		n.DoneQuantity = done
	}
}

func WithSchedule(start, end time.Time) NodeOption {
	return func(n *domain.WBSNode) {
		n.StartDate = &start
		n.EndDate = &end
	}
}

func WithScheduleStatus(s domain.ScheduleStatus) NodeOption {
	return func(n *domain.WBSNode) {
		n.Status = s
	}
}

func NewTestWBSNode(projectID, name string, opts ...NodeOption) *domain.WBSNode {
	now := time.Now().UTC()
	n := &domain.WBSNode{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Kind:      domain.NodeGroup,
		Name:      name,
		Unit:      "cum",
		Status:    domain.ScheduleNotStarted,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Purchase order options
type OrderOption func(*domain.PurchaseOrder)

func WithVendor(v string) OrderOption {
	return func(po *domain.PurchaseOrder) {
		po.Vendor = v
	}
}

func WithMaterial(m string) OrderOption {
	return func(po *domain.PurchaseOrder) {
		po.Material = m
	}
}

func WithOrderStatus(s domain.OrderStatus) OrderOption {
	return func(po *domain.PurchaseOrder) {
		po.Status = s
	}
}

func WithQtyRate(qty, rate float64) OrderOption {
	return func(po *domain.PurchaseOrder) {
		po.Quantity = qty
		po.Rate = rate
	}
}

func WithOrderDate(d time.Time) OrderOption {
	return func(po *domain.PurchaseOrder) {
		po.OrderDate = d
	}
}

func WithDueDate(d time.Time) OrderOption {
	return func(po *domain.PurchaseOrder) {
		po.DueDate = &d
	}
}

func WithOrderNumber(n string) OrderOption {
	return func(po *domain.PurchaseOrder) {
		po.Number = n
	}
}

func WithRemarks(r string) OrderOption {
	return func(po *domain.PurchaseOrder) {
		po.Remarks = r
	}
}

func NewTestPurchaseOrder(projectID string, opts ...OrderOption) *domain.PurchaseOrder {
	now := time.Now().UTC()
	po := &domain.PurchaseOrder{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Number:    fmt.Sprintf("PO-%04d", testOrderCounter.Add(1)),
		Vendor:    "UltraTech Supplies",
		Material:  "OPC 53 cement",
		Unit:      "bag",
		Quantity:  100,
		Rate:      410,
		Status:    domain.OrderIssued,
		OrderDate: now.Truncate(24 * time.Hour),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(po)
	}
	return po
}
