package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomwrenn/gantry/internal/db"
	"github.com/tomwrenn/gantry/internal/domain"
)

// SQLiteBlackoutRepo implements BlackoutRepo using a SQLite database.
type SQLiteBlackoutRepo struct {
	conn db.DBTX
}

// NewSQLiteBlackoutRepo creates a new SQLiteBlackoutRepo.
func NewSQLiteBlackoutRepo(conn db.DBTX) *SQLiteBlackoutRepo {
	return &SQLiteBlackoutRepo{conn: conn}
}

func (r *SQLiteBlackoutRepo) Create(ctx context.Context, b *domain.Blackout) error {
	if b.EndDate.Format(dateLayout) < b.StartDate.Format(dateLayout) {
		return fmt.Errorf("blackout: end date precedes start date")
	}
	query := `INSERT INTO blackouts (id, resource_id, start_date, end_date, reason) VALUES (?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		b.ID,
		b.ResourceID,
		b.StartDate.Format(dateLayout),
		b.EndDate.Format(dateLayout),
		b.Reason,
	)
	if err != nil {
		return fmt.Errorf("inserting blackout: %w", err)
	}
	return nil
}

func (r *SQLiteBlackoutRepo) ListByResource(ctx context.Context, resourceID string) ([]domain.Blackout, error) {
	query := `SELECT id, resource_id, start_date, end_date, reason
		FROM blackouts WHERE resource_id = ? ORDER BY start_date`
	rows, err := r.conn.QueryContext(ctx, query, resourceID)
	if err != nil {
		return nil, fmt.Errorf("listing blackouts: %w", err)
	}
	defer rows.Close()
	return scanBlackouts(rows)
}

func (r *SQLiteBlackoutRepo) List(ctx context.Context, from, to *time.Time) ([]domain.Blackout, error) {
	query := `SELECT id, resource_id, start_date, end_date, reason FROM blackouts`
	var args []any
	if from != nil && to != nil {
		query += ` WHERE end_date >= ? AND start_date <= ?`
		args = append(args, from.Format(dateLayout), to.Format(dateLayout))
	}
	query += ` ORDER BY start_date`

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing blackouts: %w", err)
	}
	defer rows.Close()
	return scanBlackouts(rows)
}

func (r *SQLiteBlackoutRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM blackouts WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting blackout: %w", err)
	}
	return nil
}

// scanBlackouts scans multiple blackout rows from *sql.Rows.
func scanBlackouts(rows *sql.Rows) ([]domain.Blackout, error) {
	var blackouts []domain.Blackout
	for rows.Next() {
		var b domain.Blackout
		var startStr, endStr string
		if err := rows.Scan(&b.ID, &b.ResourceID, &startStr, &endStr, &b.Reason); err != nil {
			return nil, fmt.Errorf("scanning blackout: %w", err)
		}
		start, err := time.Parse(dateLayout, startStr)
		if err != nil {
			return nil, fmt.Errorf("parsing blackout start_date: %w", err)
		}
		end, err := time.Parse(dateLayout, endStr)
		if err != nil {
			return nil, fmt.Errorf("parsing blackout end_date: %w", err)
		}
		b.StartDate, b.EndDate = start, end
		blackouts = append(blackouts, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating blackouts: %w", err)
	}
	return blackouts, nil
}
