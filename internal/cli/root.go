package cli

import (
	"time"

	"github.com/alexanderramin/sitedesk/internal/grid"
	"github.com/alexanderramin/sitedesk/internal/service"
	"github.com/alexanderramin/sitedesk/internal/uistate"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects  service.ProjectService
	Schedules service.ScheduleService
	Orders    service.PurchaseOrderService

	// State persists tree expansion and table sort between sessions.
	// Nil keeps view state in memory only.
	State *uistate.Store

	// Clock drives loading indicators and date badges. Nil means wall time.
	Clock grid.Clock

	// IsInteractive reports whether stdin is a terminal, in which case the
	// bare command opens the TUI.
	IsInteractive func() bool
}

func (a *App) clock() grid.Clock {
	if a.Clock == nil {
		return grid.SystemClock{}
	}
	return a.Clock
}

func (a *App) now() time.Time { return a.clock().Now() }

// NewRootCmd creates the top-level "sitedesk" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "sitedesk",
		Short:         "Site desk for construction projects, schedules and purchase orders",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newProjectCmd(app),
		newScheduleCmd(app),
		newPOCmd(app),
		newUICmd(app),
	)

	return root
}

func newUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(app)
		},
	}
}

func runTUI(app *App) error {
	_, err := tea.NewProgram(newAppModel(app), tea.WithAltScreen()).Run()
	return err
}
