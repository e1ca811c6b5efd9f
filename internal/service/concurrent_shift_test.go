package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomwrenn/gantry/internal/contract"
	"github.com/tomwrenn/gantry/internal/db"
	"github.com/tomwrenn/gantry/internal/domain"
	"github.com/tomwrenn/gantry/internal/repository"
)

// newConcurrentTestDB creates a file-backed SQLite database in a temp
// directory. Unlike :memory:, a file-backed DB shares state across all
// connections in the pool, which is required to test real concurrent
// access with WAL mode.
func newConcurrentTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dir := t.TempDir()
	database, err := db.OpenDB(filepath.Join(dir, "concurrent_test.db"))
	require.NoError(t, err, "failed to create concurrent test database")
	t.Cleanup(func() { database.Close() })
	return database
}

// Concurrent shifts against one project must serialize: every shift
// reads the latest snapshot, so lost updates would surface as a final
// date that reflects fewer shifts than were applied.
func TestScheduleService_ConcurrentShifts_NoLostUpdates(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()

	snapshots := repository.NewSQLiteSnapshotRepo(database)
	svc := NewScheduleService(
		snapshots,
		repository.NewSQLiteAuditRepo(database),
		repository.NewSQLiteAnchorRuleRepo(database),
		repository.NewSQLiteMilestoneRepo(database),
		db.NewSQLiteUnitOfWork(database),
	)

	_, err := svc.SetSchedule(ctx, contract.NewSetScheduleRequest("proj-1", housePhases()))
	require.NoError(t, err)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Shift(ctx, contract.NewShiftRequest("proj-1", []string{"Drywall"}, 1))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	snap, err := snapshots.GetLatest(ctx, "proj-1")
	require.NoError(t, err)
	// Started 2024-04-15, eight one-day shifts applied.
	assert.Equal(t, "2024-04-23", snap.Phases[2].StartDate.Format(domain.DateLayout))

	list, err := snapshots.ListByProject(ctx, "proj-1", 0)
	require.NoError(t, err)
	assert.Len(t, list, 1+workers)
}

// Shifts on different projects proceed independently.
func TestScheduleService_ShiftsAcrossProjects(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()

	snapshots := repository.NewSQLiteSnapshotRepo(database)
	svc := NewScheduleService(
		snapshots,
		repository.NewSQLiteAuditRepo(database),
		repository.NewSQLiteAnchorRuleRepo(database),
		repository.NewSQLiteMilestoneRepo(database),
		db.NewSQLiteUnitOfWork(database),
	)

	projects := []string{"proj-1", "proj-2", "proj-3"}
	for _, p := range projects {
		_, err := svc.SetSchedule(ctx, contract.NewSetScheduleRequest(p, housePhases()))
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(projects))
	for _, p := range projects {
		wg.Add(1)
		go func(projectID string) {
			defer wg.Done()
			_, err := svc.Shift(ctx, contract.NewShiftRequest(projectID, []string{"Framing"}, 3))
			errs <- err
		}(p)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	for _, p := range projects {
		snap, err := snapshots.GetLatest(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, "2024-03-07", snap.Phases[1].StartDate.Format(domain.DateLayout))
	}
}
