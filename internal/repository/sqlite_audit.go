package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/tomwrenn/gantry/internal/db"
	"github.com/tomwrenn/gantry/internal/domain"
)

// SQLiteAuditRepo implements AuditRepo using a SQLite database. The
// audit log is append-only; there is deliberately no update or delete.
type SQLiteAuditRepo struct {
	conn db.DBTX
}

// NewSQLiteAuditRepo creates a new SQLiteAuditRepo.
func NewSQLiteAuditRepo(conn db.DBTX) *SQLiteAuditRepo {
	return &SQLiteAuditRepo{conn: conn}
}

func (r *SQLiteAuditRepo) Append(ctx context.Context, entries []domain.AuditEntry) error {
	query := `INSERT INTO audit_entries
		(id, project_id, phase_name, delta_days, cascade_req, cascaded,
		 before_start, before_end, after_start, after_end, actor, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i := range entries {
		e := &entries[i]
		_, err := r.conn.ExecContext(ctx, query,
			e.ID,
			e.ProjectID,
			e.PhaseName,
			e.DeltaDays,
			boolToInt(e.Cascade),
			boolToInt(e.Cascaded),
			e.BeforeStart.Format(dateLayout),
			e.BeforeEnd.Format(dateLayout),
			e.AfterStart.Format(dateLayout),
			e.AfterEnd.Format(dateLayout),
			e.Actor,
			e.CreatedAt.UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("appending audit entry for %q: %w", e.PhaseName, err)
		}
	}
	return nil
}

func (r *SQLiteAuditRepo) ListByProject(ctx context.Context, projectID string, limit int) ([]domain.AuditEntry, error) {
	query := `SELECT id, project_id, phase_name, delta_days, cascade_req, cascaded,
		before_start, before_end, after_start, after_end, actor, created_at
		FROM audit_entries WHERE project_id = ? ORDER BY created_at DESC, id`
	args := []any{projectID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing audit entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		var cascadeInt, cascadedInt int
		var beforeStart, beforeEnd, afterStart, afterEnd, createdAt string
		if err := rows.Scan(
			&e.ID, &e.ProjectID, &e.PhaseName, &e.DeltaDays, &cascadeInt, &cascadedInt,
			&beforeStart, &beforeEnd, &afterStart, &afterEnd, &e.Actor, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}
		e.Cascade = intToBool(cascadeInt)
		e.Cascaded = intToBool(cascadedInt)
		var parseErr error
		if e.BeforeStart, parseErr = time.Parse(dateLayout, beforeStart); parseErr != nil {
			return nil, fmt.Errorf("parsing before_start: %w", parseErr)
		}
		if e.BeforeEnd, parseErr = time.Parse(dateLayout, beforeEnd); parseErr != nil {
			return nil, fmt.Errorf("parsing before_end: %w", parseErr)
		}
		if e.AfterStart, parseErr = time.Parse(dateLayout, afterStart); parseErr != nil {
			return nil, fmt.Errorf("parsing after_start: %w", parseErr)
		}
		if e.AfterEnd, parseErr = time.Parse(dateLayout, afterEnd); parseErr != nil {
			return nil, fmt.Errorf("parsing after_end: %w", parseErr)
		}
		if e.CreatedAt, parseErr = time.Parse(time.RFC3339Nano, createdAt); parseErr != nil {
			return nil, fmt.Errorf("parsing created_at: %w", parseErr)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating audit entries: %w", err)
	}
	return entries, nil
}
