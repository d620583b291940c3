package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/sitedesk/internal/domain"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestFormatOrderDetail(t *testing.T) {
	po := &domain.PurchaseOrder{
		Number:    "PO-0007",
		Vendor:    "UltraTech",
		Material:  "OPC 53 cement",
		Unit:      "bags",
		Quantity:  1200,
		Rate:      385.5,
		Status:    domain.OrderIssued,
		OrderDate: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		Remarks:   "Deliver to gate 2",
	}
	out := ansi.Strip(FormatOrderDetail(po))

	assert.Contains(t, out, "PO-0007")
	assert.Contains(t, out, "Issued")
	assert.Contains(t, out, "1200 bags")
	assert.Contains(t, out, "₹4,62,600.00")
	assert.Contains(t, out, "05 Jan 2026")
	assert.Contains(t, out, "Deliver to gate 2")
}

func TestPageFooter(t *testing.T) {
	assert.Equal(t, "Page 2 of 5 · 43 orders", ansi.Strip(PageFooter(2, 5, 43, "order")))
	assert.Equal(t, "Page 1 of 1 · 1 order", ansi.Strip(PageFooter(1, 1, 1, "order")))
}
