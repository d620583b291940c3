package domain

import (
	"fmt"
	"strings"
	"time"
)

type PurchaseOrder struct {
	ID        string
	ProjectID string
	Number    string
	Vendor    string
	Material  string
	Unit      string
	Quantity  float64
	Rate      float64
	Status    OrderStatus
	OrderDate time.Time
	DueDate   *time.Time
	Remarks   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Amount is the order value before taxes.
func (po *PurchaseOrder) Amount() float64 {
	return po.Quantity * po.Rate
}

// Validate checks the fields an order must carry before it is saved.
func (po *PurchaseOrder) Validate() error {
	if strings.TrimSpace(po.Vendor) == "" {
		return fmt.Errorf("vendor is required")
	}
	if strings.TrimSpace(po.Material) == "" {
		return fmt.Errorf("material is required")
	}
	if po.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative")
	}
	if po.Rate < 0 {
		return fmt.Errorf("rate must not be negative")
	}
	if !IsValidOrderStatus(string(po.Status)) {
		return fmt.Errorf("invalid status %q", po.Status)
	}
	if po.OrderDate.IsZero() {
		return fmt.Errorf("order date is required")
	}
	if po.DueDate != nil && po.DueDate.Before(po.OrderDate) {
		return fmt.Errorf("due date %s is before order date %s",
			po.DueDate.Format("2006-01-02"), po.OrderDate.Format("2006-01-02"))
	}
	return nil
}
