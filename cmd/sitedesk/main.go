package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/sitedesk/internal/cli"
	"github.com/alexanderramin/sitedesk/internal/config"
	"github.com/alexanderramin/sitedesk/internal/db"
	"github.com/alexanderramin/sitedesk/internal/repository"
	"github.com/alexanderramin/sitedesk/internal/service"
	"github.com/alexanderramin/sitedesk/internal/uistate"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// SITEDESK_HOME moves the whole config directory; individual paths can
	// still be overridden from config.yaml or SITEDESK_DB_PATH and friends.
	cfg, err := config.Load(os.Getenv("SITEDESK_HOME"))
	if err != nil {
		return err
	}
	if err := cfg.EnsureDirs(); err != nil {
		return err
	}

	// The TUI owns stdout, so use-case telemetry goes to the log file.
	var logOut io.Writer
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	observer := service.NewLogUseCaseObserver(logOut, cfg.LogLevel)

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	nodeRepo := repository.NewSQLiteWBSNodeRepo(database)
	orderRepo := repository.NewSQLitePurchaseOrderRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	app := &cli.App{
		Projects:  service.NewProjectService(projectRepo, observer),
		Schedules: service.NewScheduleService(projectRepo, nodeRepo, uow, observer),
		Orders:    service.NewPurchaseOrderService(orderRepo, uow, observer),
		State:     uistate.Open(cfg.StateDir),
	}

	// Detect interactive terminal so the bare command opens the dashboard.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
