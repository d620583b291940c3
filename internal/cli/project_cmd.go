package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/sitedesk/internal/cli/formatter"
	"github.com/alexanderramin/sitedesk/internal/domain"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectShowCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var shortID, name, client, location, start, target string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlags(cmd.Flags(), "id", "name"); err != nil {
				return err
			}
			startDate := app.now().UTC().Truncate(24 * time.Hour)
			if start != "" {
				var err error
				if startDate, err = parseDate("start", start); err != nil {
					return err
				}
			}
			targetDate, err := parseOptionalDate("target", target)
			if err != nil {
				return err
			}

			p := &domain.Project{
				ShortID:    shortID,
				Name:       name,
				Client:     client,
				Location:   location,
				StartDate:  startDate,
				TargetDate: targetDate,
				Status:     domain.ProjectActive,
			}
			if err := app.Projects.Create(cmd.Context(), p); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s [%s]\n", p.Name, p.ShortID)
			return nil
		},
	}

	cmd.Flags().StringVar(&shortID, "id", "", "Short ID (3-6 uppercase letters + 2-4 digits, e.g. MET01)")
	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&client, "client", "", "Client name")
	cmd.Flags().StringVar(&location, "location", "", "Site location")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&target, "target", "", "Target completion date (YYYY-MM-DD)")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List projects",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(projects, app.now()))
			return nil
		},
	}
}

func newProjectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <project>",
		Short: "Show a project with its schedule summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			rows, err := app.Schedules.Rows(cmd.Context(), p.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectCard(p, formatter.Summarize(rows, app.now())))
			return nil
		},
	}
}
