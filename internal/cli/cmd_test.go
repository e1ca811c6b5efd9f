package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomwrenn/gantry/internal/contract"
	"github.com/tomwrenn/gantry/internal/domain"
	"github.com/tomwrenn/gantry/internal/repository"
	"github.com/tomwrenn/gantry/internal/service"
	"github.com/tomwrenn/gantry/internal/testutil"
)

func newTestApp(t *testing.T) *App {
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

	return &App{
		Schedule:   service.NewScheduleService(snapshots, audits, rules, milestones, uow),
		Status:     service.NewStatusService(snapshots, milestones),
		Milestones: service.NewMilestoneService(snapshots, rules, milestones),
		Capacity:   service.NewCapacityService(resources, blackouts, allocations),
		Resources:  service.NewResourceService(resources, blackouts, allocations),
	}
}

func runCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func seedSchedule(t *testing.T, app *App) {
	t.Helper()
	phases := []domain.Phase{
		testutil.NewTestPhase("Foundation", testutil.WithDates("2024-01-08", "2024-02-29"), testutil.WithSortOrder(1)),
		testutil.NewTestPhase("Framing",
			testutil.WithDates("2024-03-04", "2024-04-12"),
			testutil.WithSortOrder(2),
			testutil.WithDependsOn("Foundation")),
	}
	_, err := app.Schedule.SetSchedule(context.Background(),
		contract.NewSetScheduleRequest("default", phases))
	require.NoError(t, err)
}

func TestStatusCmd_ShowsCurrentPhase(t *testing.T) {
	app := newTestApp(t)
	seedSchedule(t, app)

	out, err := runCmd(t, app, "status", "--date", "2024-03-15")
	require.NoError(t, err)
	assert.Contains(t, out, "Framing")
	assert.Contains(t, out, "40%")
}

func TestStatusCmd_RejectsBadDate(t *testing.T) {
	app := newTestApp(t)

	_, err := runCmd(t, app, "status", "--date", "15-03-2024")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected YYYY-MM-DD")
}

func TestShiftCmd_MovesPhase(t *testing.T) {
	app := newTestApp(t)
	seedSchedule(t, app)

	out, err := runCmd(t, app, "shift", "2", "Framing")
	require.NoError(t, err)
	assert.Contains(t, out, "Framing was moved later by 2 day(s)")

	statusOut, err := runCmd(t, app, "status", "--date", "2024-03-15")
	require.NoError(t, err)
	assert.Contains(t, statusOut, "2024-03-06")
}

func TestShiftCmd_RejectsNonNumericDelta(t *testing.T) {
	app := newTestApp(t)
	seedSchedule(t, app)

	_, err := runCmd(t, app, "shift", "soon", "Framing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid day count")
}

func TestShiftCmd_UnknownPhaseSurfacesCode(t *testing.T) {
	app := newTestApp(t)
	seedSchedule(t, app)

	_, err := runCmd(t, app, "shift", "2", "Moat")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNKNOWN_PHASE")
}

func TestScheduleSetCmd_LoadsFile(t *testing.T) {
	app := newTestApp(t)

	file := phaseFile{Phases: []phaseEntry{
		{Name: "Site Prep", SortOrder: 1, StartDate: strPtr("2024-01-02"), EndDate: strPtr("2024-01-12")},
		{Name: "Excavation", SortOrder: 2, StartDate: strPtr("2024-01-15"), EndDate: strPtr("2024-01-26"), DependsOn: strPtr("Site Prep")},
	}}
	data, err := json.Marshal(file)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "schedule.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	out, err := runCmd(t, app, "schedule", "set", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved schedule with 2 phase(s)")

	statusOut, err := runCmd(t, app, "status", "--date", "2024-01-20")
	require.NoError(t, err)
	assert.Contains(t, statusOut, "Excavation")
}

func TestHistoryCmd_ListsAuditTrail(t *testing.T) {
	app := newTestApp(t)
	seedSchedule(t, app)

	_, err := runCmd(t, app, "shift", "3", "Foundation", "--cascade")
	require.NoError(t, err)

	out, err := runCmd(t, app, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "Foundation")
	assert.Contains(t, out, "Framing")
	assert.Contains(t, out, "cascaded")
}

func TestMilestoneCmds_RuleAndRecompute(t *testing.T) {
	app := newTestApp(t)
	seedSchedule(t, app)

	_, err := runCmd(t, app, "milestones", "rule", "Draw5", "--phase", "foundation", "--kind", "phase_end")
	require.NoError(t, err)

	out, err := runCmd(t, app, "milestones", "recompute")
	require.NoError(t, err)
	assert.Contains(t, out, "Draw5")
	assert.Contains(t, out, "2024-02-29")

	listOut, err := runCmd(t, app, "milestones", "list")
	require.NoError(t, err)
	assert.Contains(t, listOut, "2024-02-29")
}

func TestResourceAndCapacityCmds(t *testing.T) {
	app := newTestApp(t)

	out, err := runCmd(t, app, "resource", "add", "Framing Crew A", "--capacity", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Created resource Framing Crew A")

	resources, err := app.Resources.ListResources(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, resources, 1)
	id := resources[0].ID

	_, err = runCmd(t, app, "resource", "allocate", id, "2024-03-04", "2024-03-08", "--project", "default")
	require.NoError(t, err)
	_, err = runCmd(t, app, "resource", "blackout", id, "2024-03-07", "2024-03-08", "--reason", "maintenance")
	require.NoError(t, err)

	capOut, err := runCmd(t, app, "capacity", "--from", "2024-03-04", "--weeks", "1")
	require.NoError(t, err)
	assert.Contains(t, capOut, "Framing Crew A")
	assert.Contains(t, capOut, "OVERBOOKED")
}

func strPtr(s string) *string {
	return &s
}
