package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Statements are idempotent
// (CREATE ... IF NOT EXISTS) so re-running the full set is safe.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS snapshots (
		id          TEXT PRIMARY KEY,
		project_id  TEXT NOT NULL,
		captured_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS snapshot_phases (
		snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
		position    INTEGER NOT NULL,
		name        TEXT NOT NULL,
		sort_order  INTEGER NOT NULL DEFAULT 0,
		start_date  TEXT,
		end_date    TEXT,
		depends_on  TEXT,
		resource_id TEXT,
		PRIMARY KEY (snapshot_id, position)
	)`,

	`CREATE TABLE IF NOT EXISTS resources (
		id               TEXT PRIMARY KEY,
		name             TEXT NOT NULL,
		capacity_per_day REAL NOT NULL DEFAULT 1,
		active           INTEGER NOT NULL DEFAULT 1,
		created_at       TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS blackouts (
		id          TEXT PRIMARY KEY,
		resource_id TEXT NOT NULL REFERENCES resources(id) ON DELETE CASCADE,
		start_date  TEXT NOT NULL,
		end_date    TEXT NOT NULL,
		reason      TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS allocations (
		id          TEXT PRIMARY KEY,
		resource_id TEXT NOT NULL REFERENCES resources(id) ON DELETE CASCADE,
		project_id  TEXT NOT NULL,
		phase_name  TEXT NOT NULL DEFAULT '',
		start_date  TEXT NOT NULL,
		end_date    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS anchor_rules (
		milestone_key TEXT NOT NULL,
		project_id    TEXT NOT NULL,
		phase_match   TEXT NOT NULL DEFAULT '',
		kind          TEXT NOT NULL
		              CHECK(kind IN ('phase_end','phase_start_minus_n','project_final_end','external_event')),
		offset_days   INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (project_id, milestone_key)
	)`,

	`CREATE TABLE IF NOT EXISTS milestones (
		milestone_key TEXT NOT NULL,
		project_id    TEXT NOT NULL,
		due_date      TEXT,
		updated_at    TEXT NOT NULL,
		PRIMARY KEY (project_id, milestone_key)
	)`,

	`CREATE TABLE IF NOT EXISTS audit_entries (
		id           TEXT PRIMARY KEY,
		project_id   TEXT NOT NULL,
		phase_name   TEXT NOT NULL,
		delta_days   INTEGER NOT NULL,
		cascade_req  INTEGER NOT NULL DEFAULT 0,
		cascaded     INTEGER NOT NULL DEFAULT 0,
		before_start TEXT NOT NULL,
		before_end   TEXT NOT NULL,
		after_start  TEXT NOT NULL,
		after_end    TEXT NOT NULL,
		actor        TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_snapshots_project ON snapshots(project_id, captured_at)`,
	`CREATE INDEX IF NOT EXISTS idx_blackouts_resource ON blackouts(resource_id)`,
	`CREATE INDEX IF NOT EXISTS idx_allocations_resource ON allocations(resource_id)`,
	`CREATE INDEX IF NOT EXISTS idx_allocations_dates ON allocations(start_date, end_date)`,
	`CREATE INDEX IF NOT EXISTS idx_audit_project ON audit_entries(project_id, created_at)`,
}
