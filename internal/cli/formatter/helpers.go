package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/sitedesk/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RelativeDateFrom returns a human-friendly relative date string from a reference time.
func RelativeDateFrom(t time.Time, now time.Time) string {
	days := int(math.Round(t.Sub(now).Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// RelativeDateStyled colors RelativeDateFrom by urgency: overdue or within
// two days is red, within a week yellow.
func RelativeDateStyled(t time.Time, now time.Time) string {
	text := RelativeDateFrom(t, now)
	days := int(math.Round(t.Sub(now).Hours() / 24))

	switch {
	case days <= 2:
		return StyleRed.Render(text)
	case days <= 7:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// Date formats a calendar date the way site documents print it, e.g. 05 Jan 2026.
func Date(t time.Time) string {
	return t.Format("02 Jan 2006")
}

// DateOrDash formats t with Date, or returns a dimmed dash for nil.
func DateOrDash(t *time.Time) string {
	if t == nil {
		return Dim("-")
	}
	return Date(*t)
}

// Rupees formats an amount in Indian currency notation: the last three
// integer digits form one group and every two digits before them another,
// e.g. ₹12,34,567.50.
func Rupees(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	s := strconv.FormatFloat(amount, 'f', 2, 64)
	whole, frac, _ := strings.Cut(s, ".")
	return sign + "₹" + groupIndian(whole) + "." + frac
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}

// Quantity prints q without trailing zeros, followed by unit when given.
func Quantity(q float64, unit string) string {
	s := strconv.FormatFloat(q, 'f', -1, 64)
	if unit == "" {
		return s
	}
	return s + " " + unit
}

// StatusPill returns a colored status indicator for project status.
func StatusPill(status domain.ProjectStatus) string {
	switch status {
	case domain.ProjectActive:
		return StyleGreen.Render("● Active")
	case domain.ProjectOnHold:
		return StyleYellow.Render("○ On hold")
	case domain.ProjectCompleted:
		return StyleDim.Render("✔ Completed")
	default:
		return StyleDim.Render(string(status))
	}
}

// OrderStatusPill returns a colored status indicator for a purchase order.
func OrderStatusPill(status domain.OrderStatus) string {
	switch status {
	case domain.OrderDraft:
		return StyleDim.Render("○ Draft")
	case domain.OrderIssued:
		return StyleBlue.Render("● Issued")
	case domain.OrderPartial:
		return StyleYellow.Render("◐ Partial")
	case domain.OrderReceived:
		return StyleGreen.Render("✔ Received")
	case domain.OrderCancelled:
		return StyleRed.Render("✖ Cancelled")
	default:
		return StyleDim.Render(string(status))
	}
}

// ScheduleStatusPill returns a colored status indicator for a schedule row.
func ScheduleStatusPill(status domain.ScheduleStatus) string {
	style := ScheduleColor(status)
	switch status {
	case domain.ScheduleNotStarted:
		return style.Render("○ Not started")
	case domain.ScheduleInProgress:
		return style.Render("▶ In progress")
	case domain.ScheduleCompleted:
		return style.Render("✔ Completed")
	case domain.ScheduleOnHold:
		return style.Render("‖ On hold")
	default:
		return style.Render(string(status))
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}
