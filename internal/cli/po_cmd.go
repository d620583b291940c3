package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/sitedesk/internal/cli/formatter"
	"github.com/alexanderramin/sitedesk/internal/domain"
	"github.com/alexanderramin/sitedesk/internal/grid"
	"github.com/alexanderramin/sitedesk/internal/repository"
	"github.com/spf13/cobra"
)

func newPOCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "po",
		Aliases: []string{"order"},
		Short:   "Manage purchase orders",
	}

	cmd.AddCommand(
		newPOAddCmd(app),
		newPOListCmd(app),
		newPOShowCmd(app),
		newPORemoveCmd(app),
	)

	return cmd
}

func newPOAddCmd(app *App) *cobra.Command {
	var (
		vendor, material, unit, status string
		orderDate, dueDate, remarks    string
		qty, rate                      float64
	)

	cmd := &cobra.Command{
		Use:   "add <project>",
		Short: "Raise a purchase order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := requireFlags(cmd.Flags(), "vendor", "material"); err != nil {
				return err
			}
			if status != "" && !domain.IsValidOrderStatus(status) {
				return fmt.Errorf("invalid --status %q (valid: %s)", status, orderStatusList())
			}

			po := &domain.PurchaseOrder{
				ProjectID: p.ID,
				Vendor:    vendor,
				Material:  material,
				Unit:      unit,
				Quantity:  qty,
				Rate:      rate,
				Status:    domain.OrderStatus(status),
				Remarks:   remarks,
			}
			if orderDate != "" {
				if po.OrderDate, err = parseDate("date", orderDate); err != nil {
					return err
				}
			}
			if po.DueDate, err = parseOptionalDate("due", dueDate); err != nil {
				return err
			}
			if err := app.Orders.Create(ctx, po); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s: %s from %s, %s\n",
				po.Number, po.Material, po.Vendor, formatter.Rupees(po.Amount()))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&vendor, "vendor", "", "Supplier name")
	f.StringVar(&material, "material", "", "Material ordered")
	f.StringVar(&unit, "unit", "", "Unit of measure (bags, MT, cum)")
	f.Float64Var(&qty, "qty", 0, "Quantity ordered")
	f.Float64Var(&rate, "rate", 0, "Rate per unit in rupees")
	f.StringVar(&status, "status", "", "Order status (default draft)")
	f.StringVar(&orderDate, "date", "", "Order date (YYYY-MM-DD, default today)")
	f.StringVar(&dueDate, "due", "", "Expected delivery date (YYYY-MM-DD)")
	f.StringVar(&remarks, "remarks", "", "Free-text remarks")

	return cmd
}

func newPOListCmd(app *App) *cobra.Command {
	var (
		page   int
		search string
		status string
		sorted sortFlags
	)
	cols := orderColumns()

	cmd := &cobra.Command{
		Use:     "list <project>",
		Aliases: []string{"ls"},
		Short:   "List a project's purchase orders one page at a time",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			if status != "" && !domain.IsValidOrderStatus(status) {
				return fmt.Errorf("invalid --status %q (valid: %s)", status, orderStatusList())
			}

			saved := grid.SortConfig{}
			if app.State != nil {
				if cfg, ok, err := app.State.Sort(ordersTable); err == nil && ok {
					saved = cfg
				}
			}
			cfg, err := sorted.config(cols, saved)
			if err != nil {
				return err
			}

			res, err := app.Orders.Page(ctx, p.ID, page, repository.OrderFilter{
				Search: search,
				Status: domain.OrderStatus(status),
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.RenderGrid(cols, orderRows(res.Orders), cfg, res.Page))
			fmt.Fprintln(out, formatter.PageFooter(res.Page, res.TotalPages, res.Total, "order"))
			return nil
		},
	}

	addPageFlag(cmd.Flags(), &page)
	addSortFlags(cmd.Flags(), &sorted, cols)
	cmd.Flags().StringVarP(&search, "search", "s", "", "Match number, vendor or material")
	cmd.Flags().StringVar(&status, "status", "", "Only orders with this status")

	return cmd
}

func newPOShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <project> <number>",
		Short: "Show one purchase order",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			po, err := app.Orders.Resolve(ctx, p.ID, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatOrderDetail(po))
			return nil
		},
	}
}

func newPORemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <project> <number>",
		Aliases: []string{"remove"},
		Short:   "Delete a purchase order",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			po, err := app.Orders.Resolve(ctx, p.ID, args[1])
			if err != nil {
				return err
			}
			if err := app.Orders.Delete(ctx, po.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", po.Number)
			return nil
		},
	}
}

func orderStatusList() string {
	names := make([]string, len(domain.ValidOrderStatuses))
	for i, s := range domain.ValidOrderStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
