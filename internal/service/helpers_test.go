package service

import (
	"database/sql"
	"testing"

	"github.com/tomwrenn/gantry/internal/domain"
	"github.com/tomwrenn/gantry/internal/repository"
	"github.com/tomwrenn/gantry/internal/testutil"
)

// testEnv wires every service over one in-memory database.
type testEnv struct {
	db         *sql.DB
	snapshots  repository.SnapshotRepo
	audits     repository.AuditRepo
	rules      repository.AnchorRuleRepo
	milestones repository.MilestoneRepo

	schedule   ScheduleService
	status     StatusService
	milestone  MilestoneService
	capacity   CapacityService
	resource   ResourceService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)

	snapshots := repository.NewSQLiteSnapshotRepo(database)
	audits := repository.NewSQLiteAuditRepo(database)
	rules := repository.NewSQLiteAnchorRuleRepo(database)
	milestones := repository.NewSQLiteMilestoneRepo(database)
	resources := repository.NewSQLiteResourceRepo(database)
	blackouts := repository.NewSQLiteBlackoutRepo(database)
	allocations := repository.NewSQLiteAllocationRepo(database)

	return &testEnv{
		db:         database,
		snapshots:  snapshots,
		audits:     audits,
		rules:      rules,
		milestones: milestones,
		schedule:   NewScheduleService(snapshots, audits, rules, milestones, uow),
		status:     NewStatusService(snapshots, milestones),
		milestone:  NewMilestoneService(snapshots, rules, milestones),
		capacity:   NewCapacityService(resources, blackouts, allocations),
		resource:   NewResourceService(resources, blackouts, allocations),
	}
}

// housePhases is a typical residential timeline fragment.
func housePhases() []domain.Phase {
	return []domain.Phase{
		testutil.NewTestPhase("Foundation", testutil.WithDates("2024-01-08", "2024-02-29"), testutil.WithSortOrder(1)),
		testutil.NewTestPhase("Framing",
			testutil.WithDates("2024-03-04", "2024-04-12"),
			testutil.WithSortOrder(2),
			testutil.WithDependsOn("Foundation")),
		testutil.NewTestPhase("Drywall",
			testutil.WithDates("2024-04-15", "2024-05-10"),
			testutil.WithSortOrder(3),
			testutil.WithDependsOn("Framing")),
	}
}
