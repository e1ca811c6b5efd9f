package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// OpenDB already migrated; running again must be a no-op.
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"snapshots", "snapshot_phases", "resources", "blackouts",
		"allocations", "anchor_rules", "milestones", "audit_entries",
	}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_snapshots_project",
		"idx_blackouts_resource",
		"idx_allocations_resource",
		"idx_allocations_dates",
		"idx_audit_project",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_AnchorKindConstraint(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO anchor_rules (milestone_key, project_id, kind) VALUES ('Draw1', 'p1', 'phase_midpoint')`)
	require.Error(t, err, "unknown anchor kind should violate the CHECK constraint")

	_, err = db.Exec(`INSERT INTO anchor_rules (milestone_key, project_id, kind) VALUES ('Draw1', 'p1', 'phase_end')`)
	require.NoError(t, err)
}

func TestMigrate_SnapshotPhasesCascadeDelete(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO snapshots (id, project_id, captured_at) VALUES ('s1', 'p1', '2024-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO snapshot_phases (snapshot_id, position, name) VALUES ('s1', 0, 'Framing')`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM snapshots WHERE id = 's1'`)
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM snapshot_phases WHERE snapshot_id = 's1'`).Scan(&count))
	assert.Zero(t, count, "phases should be cascade-deleted with their snapshot")
}
