package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/sitedesk/internal/domain"
)

// FormatOrderDetail renders every field of a purchase order as a labelled card.
func FormatOrderDetail(po *domain.PurchaseOrder) string {
	var b strings.Builder
	field := func(label, value string) {
		fmt.Fprintf(&b, "%s  %s\n", Dim(fmt.Sprintf("%-9s", label)), value)
	}

	b.WriteString(StyleBold.Render(po.Number) + "  " + OrderStatusPill(po.Status) + "\n\n")
	field("VENDOR", po.Vendor)
	field("MATERIAL", po.Material)
	field("QUANTITY", Quantity(po.Quantity, po.Unit))
	field("RATE", Rupees(po.Rate))
	field("AMOUNT", StyleYellowBold.Render(Rupees(po.Amount())))
	field("ORDERED", Date(po.OrderDate))
	field("DUE", DateOrDash(po.DueDate))
	if strings.TrimSpace(po.Remarks) != "" {
		b.WriteString("\n" + Header("Remarks") + "\n")
		b.WriteString(po.Remarks + "\n")
	}
	return RenderBox("Purchase order", strings.TrimRight(b.String(), "\n"))
}

// PageFooter describes a page of results, e.g. "Page 2 of 5 · 43 orders".
func PageFooter(page, totalPages, total int, noun string) string {
	if total != 1 {
		noun += "s"
	}
	return Dim(fmt.Sprintf("Page %d of %d · %d %s", page, totalPages, total, noun))
}
