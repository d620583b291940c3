package cli

import (
	"time"

	"github.com/alexanderramin/sitedesk/internal/cli/formatter"
	"github.com/alexanderramin/sitedesk/internal/domain"
	"github.com/alexanderramin/sitedesk/internal/grid"
)

// orderRowKey holds the typed order on each grid row so actions receive the
// record itself instead of looking it up again.
const orderRowKey = "order"

// ordersTable is the uistate key for the purchase order table's sort.
const ordersTable = "purchase_orders"

// orderTableStyles matches the table to the tree view: the selected row is
// green like the tree cursor.
func orderTableStyles() grid.Styles {
	s := grid.DefaultStyles()
	s.Selected = formatter.StyleGreen.Bold(true)
	s.Action = formatter.StylePurple
	return s
}

func orderColumns() []grid.Column {
	return []grid.Column{
		{Key: "number", Label: "PO No."},
		{Key: "vendor", Label: "Vendor", MaxWidth: 20},
		{Key: "material", Label: "Material", MaxWidth: 28},
		{Key: "quantity", Label: "Qty", Render: func(r grid.Row) (string, bool) {
			q, ok := r["quantity"].(float64)
			if !ok {
				return "", false
			}
			unit, _ := r["unit"].(string)
			return formatter.Quantity(q, unit), true
		}},
		{Key: "amount", Label: "Amount", Format: func(v any) string {
			f, _ := v.(float64)
			return formatter.Rupees(f)
		}},
		{Key: "status", Label: "Status", Render: func(r grid.Row) (string, bool) {
			s, ok := r["status"].(domain.OrderStatus)
			if !ok {
				return "", false
			}
			return formatter.OrderStatusPill(s), true
		}},
		{Key: "order_date", Label: "Ordered", Format: formatDateCell},
		{Key: "due_date", Label: "Due", Format: formatDateCell},
	}
}

func formatDateCell(v any) string {
	t, ok := v.(time.Time)
	if !ok {
		return grid.Blank
	}
	return formatter.Date(t)
}

// orderRow maps an order onto the keys orderColumns reads.
func orderRow(po *domain.PurchaseOrder) grid.Row {
	return grid.Row{
		"id":         po.ID,
		"number":     po.Number,
		"vendor":     po.Vendor,
		"material":   po.Material,
		"quantity":   po.Quantity,
		"unit":       po.Unit,
		"amount":     po.Amount(),
		"status":     po.Status,
		"order_date": po.OrderDate,
		"due_date":   po.DueDate,
		orderRowKey:  po,
	}
}

func orderRows(orders []*domain.PurchaseOrder) []grid.Row {
	rows := make([]grid.Row, len(orders))
	for i, po := range orders {
		rows[i] = orderRow(po)
	}
	return rows
}

// orderFromRow returns the order a row was built from.
func orderFromRow(r grid.Row) (*domain.PurchaseOrder, bool) {
	po, ok := r[orderRowKey].(*domain.PurchaseOrder)
	return po, ok && po != nil
}
