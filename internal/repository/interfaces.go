package repository

import (
	"context"
	"time"

	"github.com/tomwrenn/gantry/internal/domain"
)

type SnapshotRepo interface {
	// Create persists a snapshot and its phases. Snapshots are
	// immutable once written.
	Create(ctx context.Context, s *domain.Snapshot) error
	GetByID(ctx context.Context, id string) (*domain.Snapshot, error)
	// GetLatest returns the authoritative snapshot for a project, or
	// an error when the project has none.
	GetLatest(ctx context.Context, projectID string) (*domain.Snapshot, error)
	// GetPrevious returns the snapshot captured immediately before the
	// given one, or nil when it is the oldest.
	GetPrevious(ctx context.Context, s *domain.Snapshot) (*domain.Snapshot, error)
	// ListByProject returns snapshots ordered by captured_at descending.
	ListByProject(ctx context.Context, projectID string, limit int) ([]*domain.Snapshot, error)
}

type ResourceRepo interface {
	Create(ctx context.Context, r *domain.Resource) error
	GetByID(ctx context.Context, id string) (*domain.Resource, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Resource, error)
	SetActive(ctx context.Context, id string, active bool) error
}

type BlackoutRepo interface {
	Create(ctx context.Context, b *domain.Blackout) error
	ListByResource(ctx context.Context, resourceID string) ([]domain.Blackout, error)
	// List returns all blackouts, optionally clipped to a date range.
	List(ctx context.Context, from, to *time.Time) ([]domain.Blackout, error)
	Delete(ctx context.Context, id string) error
}

type AllocationRepo interface {
	Create(ctx context.Context, a *domain.Allocation) error
	// ListOverlapping returns allocations whose interval intersects
	// [from, to] inclusive.
	ListOverlapping(ctx context.Context, from, to time.Time) ([]domain.Allocation, error)
	ListByResource(ctx context.Context, resourceID string) ([]domain.Allocation, error)
	Delete(ctx context.Context, id string) error
}

type AnchorRuleRepo interface {
	Upsert(ctx context.Context, projectID string, r *domain.AnchorRule) error
	ListByProject(ctx context.Context, projectID string) ([]domain.AnchorRule, error)
	Delete(ctx context.Context, projectID, milestoneKey string) error
}

type MilestoneRepo interface {
	// Upsert writes one milestone's recomputed due date. Each call is
	// independent so a failed write never blocks the other milestones.
	Upsert(ctx context.Context, m *domain.Milestone) error
	GetByKey(ctx context.Context, projectID, key string) (*domain.Milestone, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Milestone, error)
}

type AuditRepo interface {
	// Append writes audit entries. The log is append-only; there is no
	// update or delete.
	Append(ctx context.Context, entries []domain.AuditEntry) error
	ListByProject(ctx context.Context, projectID string, limit int) ([]domain.AuditEntry, error)
}
