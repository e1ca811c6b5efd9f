package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomwrenn/gantry/internal/db"
	"github.com/tomwrenn/gantry/internal/domain"
)

// SQLiteAllocationRepo implements AllocationRepo using a SQLite database.
type SQLiteAllocationRepo struct {
	conn db.DBTX
}

// NewSQLiteAllocationRepo creates a new SQLiteAllocationRepo.
func NewSQLiteAllocationRepo(conn db.DBTX) *SQLiteAllocationRepo {
	return &SQLiteAllocationRepo{conn: conn}
}

func (r *SQLiteAllocationRepo) Create(ctx context.Context, a *domain.Allocation) error {
	if a.EndDate.Format(dateLayout) < a.StartDate.Format(dateLayout) {
		return fmt.Errorf("allocation: end date precedes start date")
	}
	query := `INSERT INTO allocations (id, resource_id, project_id, phase_name, start_date, end_date)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		a.ID,
		a.ResourceID,
		a.ProjectID,
		a.PhaseName,
		a.StartDate.Format(dateLayout),
		a.EndDate.Format(dateLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting allocation: %w", err)
	}
	return nil
}

func (r *SQLiteAllocationRepo) ListOverlapping(ctx context.Context, from, to time.Time) ([]domain.Allocation, error) {
	query := `SELECT id, resource_id, project_id, phase_name, start_date, end_date
		FROM allocations WHERE end_date >= ? AND start_date <= ? ORDER BY start_date`
	rows, err := r.conn.QueryContext(ctx, query, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing allocations: %w", err)
	}
	defer rows.Close()
	return scanAllocations(rows)
}

func (r *SQLiteAllocationRepo) ListByResource(ctx context.Context, resourceID string) ([]domain.Allocation, error) {
	query := `SELECT id, resource_id, project_id, phase_name, start_date, end_date
		FROM allocations WHERE resource_id = ? ORDER BY start_date`
	rows, err := r.conn.QueryContext(ctx, query, resourceID)
	if err != nil {
		return nil, fmt.Errorf("listing allocations: %w", err)
	}
	defer rows.Close()
	return scanAllocations(rows)
}

func (r *SQLiteAllocationRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM allocations WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting allocation: %w", err)
	}
	return nil
}

// scanAllocations scans multiple allocation rows from *sql.Rows.
func scanAllocations(rows *sql.Rows) ([]domain.Allocation, error) {
	var allocations []domain.Allocation
	for rows.Next() {
		var a domain.Allocation
		var startStr, endStr string
		if err := rows.Scan(&a.ID, &a.ResourceID, &a.ProjectID, &a.PhaseName, &startStr, &endStr); err != nil {
			return nil, fmt.Errorf("scanning allocation: %w", err)
		}
		start, err := time.Parse(dateLayout, startStr)
		if err != nil {
			return nil, fmt.Errorf("parsing allocation start_date: %w", err)
		}
		end, err := time.Parse(dateLayout, endStr)
		if err != nil {
			return nil, fmt.Errorf("parsing allocation end_date: %w", err)
		}
		a.StartDate, a.EndDate = start, end
		allocations = append(allocations, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating allocations: %w", err)
	}
	return allocations, nil
}
