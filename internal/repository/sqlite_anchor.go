package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomwrenn/gantry/internal/db"
	"github.com/tomwrenn/gantry/internal/domain"
)

// SQLiteAnchorRuleRepo implements AnchorRuleRepo using a SQLite database.
type SQLiteAnchorRuleRepo struct {
	conn db.DBTX
}

// NewSQLiteAnchorRuleRepo creates a new SQLiteAnchorRuleRepo.
func NewSQLiteAnchorRuleRepo(conn db.DBTX) *SQLiteAnchorRuleRepo {
	return &SQLiteAnchorRuleRepo{conn: conn}
}

func (r *SQLiteAnchorRuleRepo) Upsert(ctx context.Context, projectID string, rule *domain.AnchorRule) error {
	if err := rule.Validate(); err != nil {
		return err
	}
	query := `INSERT INTO anchor_rules (milestone_key, project_id, phase_match, kind, offset_days)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(project_id, milestone_key) DO UPDATE SET
			phase_match = excluded.phase_match,
			kind = excluded.kind,
			offset_days = excluded.offset_days`
	_, err := r.conn.ExecContext(ctx, query,
		rule.MilestoneKey,
		projectID,
		rule.PhaseMatch,
		string(rule.Kind),
		rule.OffsetDays,
	)
	if err != nil {
		return fmt.Errorf("upserting anchor rule: %w", err)
	}
	return nil
}

func (r *SQLiteAnchorRuleRepo) ListByProject(ctx context.Context, projectID string) ([]domain.AnchorRule, error) {
	query := `SELECT milestone_key, phase_match, kind, offset_days
		FROM anchor_rules WHERE project_id = ? ORDER BY milestone_key`
	rows, err := r.conn.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing anchor rules: %w", err)
	}
	defer rows.Close()

	var rules []domain.AnchorRule
	for rows.Next() {
		var rule domain.AnchorRule
		var kindStr string
		if err := rows.Scan(&rule.MilestoneKey, &rule.PhaseMatch, &kindStr, &rule.OffsetDays); err != nil {
			return nil, fmt.Errorf("scanning anchor rule: %w", err)
		}
		rule.Kind = domain.AnchorKind(kindStr)
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating anchor rules: %w", err)
	}
	return rules, nil
}

func (r *SQLiteAnchorRuleRepo) Delete(ctx context.Context, projectID, milestoneKey string) error {
	query := `DELETE FROM anchor_rules WHERE project_id = ? AND milestone_key = ?`
	_, err := r.conn.ExecContext(ctx, query, projectID, milestoneKey)
	if err != nil {
		return fmt.Errorf("deleting anchor rule: %w", err)
	}
	return nil
}

// SQLiteMilestoneRepo implements MilestoneRepo using a SQLite database.
type SQLiteMilestoneRepo struct {
	conn db.DBTX
}

// NewSQLiteMilestoneRepo creates a new SQLiteMilestoneRepo.
func NewSQLiteMilestoneRepo(conn db.DBTX) *SQLiteMilestoneRepo {
	return &SQLiteMilestoneRepo{conn: conn}
}

func (r *SQLiteMilestoneRepo) Upsert(ctx context.Context, m *domain.Milestone) error {
	query := `INSERT INTO milestones (milestone_key, project_id, due_date, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(project_id, milestone_key) DO UPDATE SET
			due_date = excluded.due_date,
			updated_at = excluded.updated_at`
	_, err := r.conn.ExecContext(ctx, query,
		m.Key,
		m.ProjectID,
		nullableTimeToString(m.DueDate, dateLayout),
		m.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting milestone: %w", err)
	}
	return nil
}

func (r *SQLiteMilestoneRepo) GetByKey(ctx context.Context, projectID, key string) (*domain.Milestone, error) {
	query := `SELECT milestone_key, project_id, due_date, updated_at
		FROM milestones WHERE project_id = ? AND milestone_key = ?`
	row := r.conn.QueryRowContext(ctx, query, projectID, key)

	var m domain.Milestone
	var dueStr sql.NullString
	var updatedAtStr string
	if err := row.Scan(&m.Key, &m.ProjectID, &dueStr, &updatedAtStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("milestone not found")
		}
		return nil, fmt.Errorf("scanning milestone: %w", err)
	}
	m.DueDate = parseNullableTime(dueStr, dateLayout)
	updatedAt, err := time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	m.UpdatedAt = updatedAt
	return &m, nil
}

func (r *SQLiteMilestoneRepo) ListByProject(ctx context.Context, projectID string) ([]domain.Milestone, error) {
	query := `SELECT milestone_key, project_id, due_date, updated_at
		FROM milestones WHERE project_id = ? ORDER BY milestone_key`
	rows, err := r.conn.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing milestones: %w", err)
	}
	defer rows.Close()

	var milestones []domain.Milestone
	for rows.Next() {
		var m domain.Milestone
		var dueStr sql.NullString
		var updatedAtStr string
		if err := rows.Scan(&m.Key, &m.ProjectID, &dueStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning milestone row: %w", err)
		}
		m.DueDate = parseNullableTime(dueStr, dateLayout)
		updatedAt, err := time.Parse(time.RFC3339, updatedAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing updated_at: %w", err)
		}
		m.UpdatedAt = updatedAt
		milestones = append(milestones, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating milestones: %w", err)
	}
	return milestones, nil
}
