package domain

import "time"

// WBSNode is a persisted schedule node. RowIndex is nil for structural nodes
// that group children but are not shown as a row of their own.
type WBSNode struct {
	ID           string
	ProjectID    string
	ParentID     *string
	Kind         NodeKind
	OrderIndex   int
	RowIndex     *int
	Code         string
	Name         string
	Unit         string
	Quantity     float64
	DoneQuantity float64
	StartDate    *time.Time
	EndDate      *time.Time
	Status       ScheduleStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Balance is the quantity still to be executed. It never goes below zero.
func (n *WBSNode) Balance() float64 {
	b := n.Quantity - n.DoneQuantity
	if b < 0 {
		return 0
	}
	return b
}
