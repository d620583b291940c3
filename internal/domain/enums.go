package domain

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
)

// NodeKind is the level a schedule node occupies in the work breakdown.
type NodeKind string

const (
	NodeGroup NodeKind = "group"
	NodeItem  NodeKind = "item"
	NodeTask  NodeKind = "task"
	NodeLeaf  NodeKind = "leaf"
)

// Level returns the fixed depth of the kind (0 for group through 3 for leaf),
// or -1 for an unknown kind.
func (k NodeKind) Level() int {
	switch k {
	case NodeGroup:
		return 0
	case NodeItem:
		return 1
	case NodeTask:
		return 2
	case NodeLeaf:
		return 3
	}
	return -1
}

// KindAtLevel is the inverse of Level.
func KindAtLevel(level int) NodeKind {
	switch level {
	case 0:
		return NodeGroup
	case 1:
		return NodeItem
	case 2:
		return NodeTask
	default:
		return NodeLeaf
	}
}

// ValidNodeKinds is the canonical set of accepted node kind strings.
var ValidNodeKinds = map[string]bool{
	"group": true, "item": true, "task": true, "leaf": true,
}

type ScheduleStatus string

const (
	ScheduleNotStarted ScheduleStatus = "not_started"
	ScheduleInProgress ScheduleStatus = "in_progress"
	ScheduleCompleted  ScheduleStatus = "completed"
	ScheduleOnHold     ScheduleStatus = "on_hold"
)

// ValidScheduleStatuses is the canonical set of accepted schedule statuses.
var ValidScheduleStatuses = map[string]bool{
	"not_started": true, "in_progress": true, "completed": true, "on_hold": true,
}

type OrderStatus string

const (
	OrderDraft     OrderStatus = "draft"
	OrderIssued    OrderStatus = "issued"
	OrderPartial   OrderStatus = "partially_received"
	OrderReceived  OrderStatus = "received"
	OrderCancelled OrderStatus = "cancelled"
)

// ValidOrderStatuses lists purchase order statuses in workflow order.
var ValidOrderStatuses = []OrderStatus{
	OrderDraft, OrderIssued, OrderPartial, OrderReceived, OrderCancelled,
}

// IsValidOrderStatus reports whether s names a known purchase order status.
func IsValidOrderStatus(s string) bool {
	for _, v := range ValidOrderStatuses {
		if string(v) == s {
			return true
		}
	}
	return false
}
