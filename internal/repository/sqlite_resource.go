package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomwrenn/gantry/internal/db"
	"github.com/tomwrenn/gantry/internal/domain"
)

// SQLiteResourceRepo implements ResourceRepo using a SQLite database.
type SQLiteResourceRepo struct {
	conn db.DBTX
}

// NewSQLiteResourceRepo creates a new SQLiteResourceRepo.
func NewSQLiteResourceRepo(conn db.DBTX) *SQLiteResourceRepo {
	return &SQLiteResourceRepo{conn: conn}
}

func (r *SQLiteResourceRepo) Create(ctx context.Context, res *domain.Resource) error {
	query := `INSERT INTO resources (id, name, capacity_per_day, active, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		res.ID,
		res.Name,
		res.CapacityPerDay,
		boolToInt(res.Active),
		res.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting resource: %w", err)
	}
	return nil
}

func (r *SQLiteResourceRepo) GetByID(ctx context.Context, id string) (*domain.Resource, error) {
	query := `SELECT id, name, capacity_per_day, active, created_at FROM resources WHERE id = ?`
	row := r.conn.QueryRowContext(ctx, query, id)

	var res domain.Resource
	var activeInt int
	var createdAtStr string
	if err := row.Scan(&res.ID, &res.Name, &res.CapacityPerDay, &activeInt, &createdAtStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("resource not found")
		}
		return nil, fmt.Errorf("scanning resource: %w", err)
	}
	res.Active = intToBool(activeInt)
	createdAt, err := time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	res.CreatedAt = createdAt
	return &res, nil
}

func (r *SQLiteResourceRepo) List(ctx context.Context, activeOnly bool) ([]domain.Resource, error) {
	query := `SELECT id, name, capacity_per_day, active, created_at FROM resources`
	if activeOnly {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY name`

	rows, err := r.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing resources: %w", err)
	}
	defer rows.Close()

	var resources []domain.Resource
	for rows.Next() {
		var res domain.Resource
		var activeInt int
		var createdAtStr string
		if err := rows.Scan(&res.ID, &res.Name, &res.CapacityPerDay, &activeInt, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning resource row: %w", err)
		}
		res.Active = intToBool(activeInt)
		createdAt, err := time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		res.CreatedAt = createdAt
		resources = append(resources, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating resources: %w", err)
	}
	return resources, nil
}

func (r *SQLiteResourceRepo) SetActive(ctx context.Context, id string, active bool) error {
	query := `UPDATE resources SET active = ? WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query, boolToInt(active), id)
	if err != nil {
		return fmt.Errorf("updating resource active flag: %w", err)
	}
	return nil
}
