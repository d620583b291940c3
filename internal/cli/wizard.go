package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/sitedesk/internal/cli/formatter"
	"github.com/alexanderramin/sitedesk/internal/domain"
	"github.com/alexanderramin/sitedesk/internal/repository"
	"github.com/alexanderramin/sitedesk/internal/wbs"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// sitedeskHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func sitedeskHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func newForm(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithTheme(sitedeskHuhTheme()).WithShowHelp(false)
}

// orderFormValues holds the text a purchase order form edits. Numbers and
// dates stay strings until the form is submitted.
type orderFormValues struct {
	Vendor    string
	Material  string
	Unit      string
	Quantity  string
	Rate      string
	Status    string
	OrderDate string
	DueDate   string
	Remarks   string
}

func orderFormFrom(po *domain.PurchaseOrder) *orderFormValues {
	v := &orderFormValues{
		Vendor:    po.Vendor,
		Material:  po.Material,
		Unit:      po.Unit,
		Quantity:  strconv.FormatFloat(po.Quantity, 'f', -1, 64),
		Rate:      strconv.FormatFloat(po.Rate, 'f', -1, 64),
		Status:    string(po.Status),
		OrderDate: po.OrderDate.Format(dateLayout),
		Remarks:   po.Remarks,
	}
	if po.DueDate != nil {
		v.DueDate = po.DueDate.Format(dateLayout)
	}
	return v
}

// apply writes the form values onto po. The form validators have already
// run, so parse failures only happen for values set outside the form.
func (v *orderFormValues) apply(po *domain.PurchaseOrder) error {
	qty, err := parseNumber("quantity", v.Quantity)
	if err != nil {
		return err
	}
	rate, err := parseNumber("rate", v.Rate)
	if err != nil {
		return err
	}
	var orderDate time.Time
	if strings.TrimSpace(v.OrderDate) != "" {
		if orderDate, err = parseDate("date", v.OrderDate); err != nil {
			return err
		}
	}
	due, err := parseOptionalDate("due", v.DueDate)
	if err != nil {
		return err
	}

	po.Vendor = strings.TrimSpace(v.Vendor)
	po.Material = strings.TrimSpace(v.Material)
	po.Unit = strings.TrimSpace(v.Unit)
	po.Quantity = qty
	po.Rate = rate
	po.Status = domain.OrderStatus(v.Status)
	po.OrderDate = orderDate
	po.DueDate = due
	po.Remarks = strings.TrimSpace(v.Remarks)
	return nil
}

func orderStatusOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(domain.ValidOrderStatuses))
	for _, s := range domain.ValidOrderStatuses {
		opts = append(opts, huh.NewOption(strings.ReplaceAll(string(s), "_", " "), string(s)))
	}
	return opts
}

// orderForm edits v in two steps: what is ordered, then terms and dates.
func orderForm(v *orderFormValues) *huh.Form {
	if v.Status == "" {
		v.Status = string(domain.OrderDraft)
	}
	return newForm(
		huh.NewGroup(
			huh.NewInput().Title("Vendor").Value(&v.Vendor).Validate(validateRequired("vendor")),
			huh.NewInput().Title("Material").Value(&v.Material).Validate(validateRequired("material")),
			huh.NewInput().Title("Unit").Placeholder("bags, MT, cum").Value(&v.Unit),
			huh.NewInput().Title("Quantity").Value(&v.Quantity).Validate(validateNonNegative),
			huh.NewInput().Title("Rate (₹ per unit)").Value(&v.Rate).Validate(validateNonNegative),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Status").Options(orderStatusOptions()...).Value(&v.Status),
			huh.NewInput().Title("Order date").Placeholder("YYYY-MM-DD, blank for today").Value(&v.OrderDate).Validate(validateOptionalDate),
			huh.NewInput().Title("Due date").Placeholder("YYYY-MM-DD").Value(&v.DueDate).Validate(validateOptionalDate),
			huh.NewText().Title("Remarks").Value(&v.Remarks),
		),
	)
}

// orderFilterValues backs the filter form.
type orderFilterValues struct {
	Search string
	Status string
}

func (v *orderFilterValues) filter() repository.OrderFilter {
	return repository.OrderFilter{Search: strings.TrimSpace(v.Search), Status: domain.OrderStatus(v.Status)}
}

func orderFilterForm(v *orderFilterValues) *huh.Form {
	opts := append([]huh.Option[string]{huh.NewOption("any", "")}, orderStatusOptions()...)
	return newForm(
		huh.NewGroup(
			huh.NewInput().Title("Search").Placeholder("number, vendor or material").Value(&v.Search),
			huh.NewSelect[string]().Title("Status").Options(opts...).Value(&v.Status),
		),
	)
}

// progressForm asks for the completed quantity of a schedule row.
func progressForm(row wbs.Row, result *string) *huh.Form {
	*result = strconv.FormatFloat(row.DoneQuantity, 'f', -1, 64)
	return newForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Completed quantity").
				Description(fmt.Sprintf("%s, out of %s", row.Name, formatter.Quantity(row.Quantity, row.Unit))).
				Value(result).
				Validate(func(s string) error {
					f, err := parseNumber("quantity", s)
					if err != nil {
						return err
					}
					if f < 0 || f > row.Quantity {
						return fmt.Errorf("enter a value between 0 and %g", row.Quantity)
					}
					return nil
				}),
		),
	)
}

// confirmForm creates a huh form for a yes/no confirmation.
func confirmForm(title string, result *bool) *huh.Form {
	return newForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	)
}

func parseNumber(field, s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", field)
	}
	return f, nil
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// validateNonNegative accepts empty or a number >= 0.
func validateNonNegative(s string) error {
	f, err := parseNumber("value", s)
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if f < 0 {
		return fmt.Errorf("enter a non-negative number")
	}
	return nil
}

// validateOptionalDate accepts empty or a YYYY-MM-DD date string.
func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

// ── mutations ────────────────────────────────────────────────────────────────

// The commands below run a write once a form completes and report through
// mutationDoneMsg, which the app turns into a toast and a refresh.

func createOrderCmd(app *App, projectID string, v *orderFormValues) tea.Cmd {
	return func() tea.Msg {
		po := &domain.PurchaseOrder{ProjectID: projectID}
		if err := v.apply(po); err != nil {
			return mutationDoneMsg{err: err}
		}
		if err := app.Orders.Create(context.Background(), po); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{text: fmt.Sprintf("Created %s", po.Number)}
	}
}

func updateOrderCmd(app *App, po *domain.PurchaseOrder, v *orderFormValues) tea.Cmd {
	return func() tea.Msg {
		updated := *po
		if err := v.apply(&updated); err != nil {
			return mutationDoneMsg{err: err}
		}
		if err := app.Orders.Update(context.Background(), &updated); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{text: fmt.Sprintf("Updated %s", updated.Number)}
	}
}

func deleteOrderCmd(app *App, po *domain.PurchaseOrder) tea.Cmd {
	return func() tea.Msg {
		if err := app.Orders.Delete(context.Background(), po.ID); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{text: fmt.Sprintf("Deleted %s", po.Number)}
	}
}

func updateProgressCmd(app *App, row wbs.Row, value string) tea.Cmd {
	return func() tea.Msg {
		done, err := parseNumber("quantity", value)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		node, err := app.Schedules.UpdateProgress(context.Background(), row.ID, done)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{text: fmt.Sprintf("Row %d %s: %s done", row.RowIndex, node.Name,
			formatter.Quantity(node.DoneQuantity, node.Unit))}
	}
}
