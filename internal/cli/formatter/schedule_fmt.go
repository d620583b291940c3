package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/sitedesk/internal/wbs"
)

// FormatScheduleTable renders flattened schedule rows as a table. Names are
// indented by level so the hierarchy stays readable without tree markers.
func FormatScheduleTable(rows []wbs.Row, now time.Time) string {
	if len(rows) == 0 {
		return Dim("No schedule rows. Import one with: sitedesk schedule import <file>") + "\n"
	}

	headers := []string{"ROW", "ACTIVITY", "QTY", "DONE", "BALANCE", "END", "STATUS", "LAG"}
	body := make([][]string, 0, len(rows))
	for _, r := range rows {
		lag := Dim("-")
		if d := r.LagDays(now); d > 0 {
			lag = StyleRed.Render(fmt.Sprintf("%dd", d))
		}
		qty, done, bal := Dim("-"), Dim("-"), Dim("-")
		if r.Quantity > 0 {
			qty = Quantity(r.Quantity, r.Unit)
			done = Quantity(r.DoneQuantity, "")
			bal = Quantity(r.Balance(), "")
		}
		body = append(body, []string{
			Dim(strconv.Itoa(r.RowIndex)),
			strings.Repeat("  ", r.Level) + r.Name,
			qty,
			done,
			bal,
			DateOrDash(r.End),
			ScheduleStatusPill(r.Status),
			lag,
		})
	}
	return RenderTable(headers, body)
}
