package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/tomwrenn/gantry/internal/cli"
	"github.com/tomwrenn/gantry/internal/db"
	"github.com/tomwrenn/gantry/internal/repository"
	"github.com/tomwrenn/gantry/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.gantry/gantry.db
	dbPath := os.Getenv("GANTRY_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".gantry", "gantry.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	snapshotRepo := repository.NewSQLiteSnapshotRepo(database)
	auditRepo := repository.NewSQLiteAuditRepo(database)
	ruleRepo := repository.NewSQLiteAnchorRuleRepo(database)
	milestoneRepo := repository.NewSQLiteMilestoneRepo(database)
	resourceRepo := repository.NewSQLiteResourceRepo(database)
	blackoutRepo := repository.NewSQLiteBlackoutRepo(database)
	allocationRepo := repository.NewSQLiteAllocationRepo(database)

	// Wire unit of work for transactional schedule edits
	uow := db.NewSQLiteUnitOfWork(database)

	// Use-case telemetry goes to stderr when debugging is on.
	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if os.Getenv("GANTRY_DEBUG") != "" {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	app := &cli.App{
		Schedule:   service.NewScheduleService(snapshotRepo, auditRepo, ruleRepo, milestoneRepo, uow, observer),
		Status:     service.NewStatusService(snapshotRepo, milestoneRepo),
		Milestones: service.NewMilestoneService(snapshotRepo, ruleRepo, milestoneRepo, observer),
		Capacity:   service.NewCapacityService(resourceRepo, blackoutRepo, allocationRepo, observer),
		Resources:  service.NewResourceService(resourceRepo, blackoutRepo, allocationRepo),
	}

	// Detect interactive terminal; pipes get tables without the strip.
	app.IsTerminal = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
