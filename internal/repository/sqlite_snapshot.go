package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomwrenn/gantry/internal/db"
	"github.com/tomwrenn/gantry/internal/domain"
)

// SQLiteSnapshotRepo implements SnapshotRepo using a SQLite database.
// Constructed over a db.DBTX so the same code runs standalone or inside
// a UnitOfWork transaction.
type SQLiteSnapshotRepo struct {
	conn db.DBTX
}

// NewSQLiteSnapshotRepo creates a new SQLiteSnapshotRepo.
func NewSQLiteSnapshotRepo(conn db.DBTX) *SQLiteSnapshotRepo {
	return &SQLiteSnapshotRepo{conn: conn}
}

func (r *SQLiteSnapshotRepo) Create(ctx context.Context, s *domain.Snapshot) error {
	if err := s.Validate(); err != nil {
		return err
	}
	query := `INSERT INTO snapshots (id, project_id, captured_at) VALUES (?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query, s.ID, s.ProjectID, s.CapturedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("inserting snapshot: %w", err)
	}

	phaseQuery := `INSERT INTO snapshot_phases (snapshot_id, position, name, sort_order, start_date, end_date, depends_on, resource_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	for i := range s.Phases {
		p := &s.Phases[i]
		_, err := r.conn.ExecContext(ctx, phaseQuery,
			s.ID,
			i,
			p.Name,
			p.SortOrder,
			nullableTimeToString(p.StartDate, dateLayout),
			nullableTimeToString(p.EndDate, dateLayout),
			nullableStr(p.DependsOn),
			nullableStr(p.ResourceID),
		)
		if err != nil {
			return fmt.Errorf("inserting snapshot phase %q: %w", p.Name, err)
		}
	}
	return nil
}

func (r *SQLiteSnapshotRepo) GetByID(ctx context.Context, id string) (*domain.Snapshot, error) {
	query := `SELECT id, project_id, captured_at FROM snapshots WHERE id = ?`
	row := r.conn.QueryRowContext(ctx, query, id)
	s, err := r.scanSnapshot(row)
	if err != nil {
		return nil, err
	}
	return r.attachPhases(ctx, s)
}

func (r *SQLiteSnapshotRepo) GetLatest(ctx context.Context, projectID string) (*domain.Snapshot, error) {
	query := `SELECT id, project_id, captured_at FROM snapshots
		WHERE project_id = ? ORDER BY captured_at DESC, id DESC LIMIT 1`
	row := r.conn.QueryRowContext(ctx, query, projectID)
	s, err := r.scanSnapshot(row)
	if err != nil {
		return nil, err
	}
	return r.attachPhases(ctx, s)
}

func (r *SQLiteSnapshotRepo) GetPrevious(ctx context.Context, s *domain.Snapshot) (*domain.Snapshot, error) {
	query := `SELECT id, project_id, captured_at FROM snapshots
		WHERE project_id = ? AND (captured_at < ? OR (captured_at = ? AND id < ?))
		ORDER BY captured_at DESC, id DESC LIMIT 1`
	capturedAt := s.CapturedAt.UTC().Format(time.RFC3339Nano)
	row := r.conn.QueryRowContext(ctx, query, s.ProjectID, capturedAt, capturedAt, s.ID)
	prev, err := r.scanSnapshot(row)
	if err != nil {
		if err == ErrSnapshotNotFound {
			return nil, nil
		}
		return nil, err
	}
	return r.attachPhases(ctx, prev)
}

func (r *SQLiteSnapshotRepo) ListByProject(ctx context.Context, projectID string, limit int) ([]*domain.Snapshot, error) {
	query := `SELECT id, project_id, captured_at FROM snapshots
		WHERE project_id = ? ORDER BY captured_at DESC, id DESC`
	args := []any{projectID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*domain.Snapshot
	for rows.Next() {
		var s domain.Snapshot
		var capturedAtStr string
		if err := rows.Scan(&s.ID, &s.ProjectID, &capturedAtStr); err != nil {
			return nil, fmt.Errorf("scanning snapshot row: %w", err)
		}
		s.CapturedAt, err = time.Parse(time.RFC3339Nano, capturedAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing captured_at: %w", err)
		}
		snapshots = append(snapshots, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshots: %w", err)
	}
	for _, s := range snapshots {
		if _, err := r.attachPhases(ctx, s); err != nil {
			return nil, err
		}
	}
	return snapshots, nil
}

// ErrSnapshotNotFound is returned when a project has no snapshot yet.
var ErrSnapshotNotFound = fmt.Errorf("snapshot not found")

func (r *SQLiteSnapshotRepo) scanSnapshot(row *sql.Row) (*domain.Snapshot, error) {
	var s domain.Snapshot
	var capturedAtStr string
	if err := row.Scan(&s.ID, &s.ProjectID, &capturedAtStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("scanning snapshot: %w", err)
	}
	var parseErr error
	s.CapturedAt, parseErr = time.Parse(time.RFC3339Nano, capturedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing captured_at: %w", parseErr)
	}
	return &s, nil
}

func (r *SQLiteSnapshotRepo) attachPhases(ctx context.Context, s *domain.Snapshot) (*domain.Snapshot, error) {
	query := `SELECT name, sort_order, start_date, end_date, depends_on, resource_id
		FROM snapshot_phases WHERE snapshot_id = ? ORDER BY position`
	rows, err := r.conn.QueryContext(ctx, query, s.ID)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot phases: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.Phase
		var startStr, endStr, dependsStr, resourceStr sql.NullString
		if err := rows.Scan(&p.Name, &p.SortOrder, &startStr, &endStr, &dependsStr, &resourceStr); err != nil {
			return nil, fmt.Errorf("scanning snapshot phase: %w", err)
		}
		p.StartDate = parseNullableTime(startStr, dateLayout)
		p.EndDate = parseNullableTime(endStr, dateLayout)
		p.DependsOn = strPtr(dependsStr)
		p.ResourceID = strPtr(resourceStr)
		s.Phases = append(s.Phases, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshot phases: %w", err)
	}
	return s, nil
}
