package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/alexanderramin/sitedesk/internal/cli/formatter"
	"github.com/alexanderramin/sitedesk/internal/service"
	"github.com/alexanderramin/sitedesk/internal/wbs"
	"github.com/spf13/cobra"
)

func newScheduleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "schedule",
		Aliases: []string{"wbs"},
		Short:   "Import and inspect work-breakdown schedules",
	}

	cmd.AddCommand(
		newScheduleImportCmd(app),
		newScheduleShowCmd(app),
		newScheduleProgressCmd(app),
	)

	return cmd
}

func newScheduleImportCmd(app *App) *cobra.Command {
	var projectRef string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a schedule file, creating its project or replacing an existing schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID := ""
			if projectRef != "" {
				p, err := resolveProject(ctx, app, projectRef)
				if err != nil {
					return err
				}
				projectID = p.ID
			}

			if app.IsInteractive != nil && app.IsInteractive() {
				stop := formatter.StartSpinner(cmd.ErrOrStderr(), "Importing schedule...")
				defer stop()
			}
			res, err := app.Schedules.ImportFile(ctx, projectID, args[0])
			if err != nil {
				return err
			}
			// Replaced nodes get new ids, so the saved expansion no longer applies.
			if !res.Created && app.State != nil {
				if err := app.State.Forget(res.Project.ID); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if res.Created {
				fmt.Fprintf(out, "Created project %s [%s]\n", res.Project.Name, res.Project.ShortID)
			}
			fmt.Fprintf(out, "Imported %d rows (%d nodes) into %s\n", res.RowCount, res.NodeCount, res.Project.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&projectRef, "project", "", "Replace the schedule of this existing project")
	return cmd
}

func newScheduleShowCmd(app *App) *cobra.Command {
	var tree bool

	cmd := &cobra.Command{
		Use:   "show <project>",
		Short: "Show a project's schedule rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			rows, err := app.Schedules.Rows(ctx, p.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header(p.Name+" schedule"))
			if !tree {
				fmt.Fprint(out, formatter.FormatScheduleTable(rows, app.now()))
				return nil
			}
			state, err := loadExpandState(app, p.ID, rows)
			if err != nil {
				return err
			}
			visible := wbs.Visible(rows, state)
			fmt.Fprint(out, formatter.RenderWBSTree(formatter.TreeLines(rows, visible, state, -1), app.now()))
			if hidden := len(rows) - len(visible); hidden > 0 {
				fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("%d collapsed rows hidden", hidden)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&tree, "tree", false, "Render as a tree using the expansion saved by the dashboard")
	return cmd
}

func newScheduleProgressCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "progress <project> <row> <done>",
		Short: "Record the completed quantity of a schedule row",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			rowIndex, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("row must be a number, got %q", args[1])
			}
			done, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("done must be a number, got %q", args[2])
			}

			row, err := findScheduleRow(ctx, app.Schedules, p.ID, rowIndex)
			if err != nil {
				return err
			}
			node, err := app.Schedules.UpdateProgress(ctx, row.ID, done)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Row %d %s: %s of %s done (%s)\n",
				rowIndex, node.Name,
				formatter.Quantity(node.DoneQuantity, ""),
				formatter.Quantity(node.Quantity, node.Unit),
				node.Status)
			return nil
		},
	}
}

func findScheduleRow(ctx context.Context, svc service.ScheduleService, projectID string, rowIndex int) (wbs.Row, error) {
	rows, err := svc.Rows(ctx, projectID)
	if err != nil {
		return wbs.Row{}, err
	}
	for _, r := range rows {
		if r.RowIndex == rowIndex {
			return r, nil
		}
	}
	return wbs.Row{}, fmt.Errorf("schedule row %d not found", rowIndex)
}

// loadExpandState returns the saved expansion for a project, or every
// parent expanded when nothing was saved.
func loadExpandState(app *App, projectID string, rows []wbs.Row) (wbs.ExpandState, error) {
	if app.State == nil {
		return wbs.DefaultExpanded(rows), nil
	}
	state, ok, err := app.State.ExpandState(projectID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return wbs.DefaultExpanded(rows), nil
	}
	return state, nil
}
