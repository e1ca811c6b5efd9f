package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/tomwrenn/gantry/internal/domain"
)

// Date parses a "2006-01-02" string, panicking on bad fixtures.
func Date(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

// Phase options
type PhaseOption func(*domain.Phase)

func WithDates(start, end string) PhaseOption {
	return func(p *domain.Phase) {
		s, e := Date(start), Date(end)
		p.StartDate, p.EndDate = &s, &e
	}
}

func WithDependsOn(name string) PhaseOption {
	return func(p *domain.Phase) {
		p.DependsOn = &name
	}
}

func WithSortOrder(n int) PhaseOption {
	return func(p *domain.Phase) {
		p.SortOrder = n
	}
}

func WithPhaseResource(resourceID string) PhaseOption {
	return func(p *domain.Phase) {
		p.ResourceID = &resourceID
	}
}

func NewTestPhase(name string, opts ...PhaseOption) domain.Phase {
	p := domain.Phase{Name: name}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Snapshot options
type SnapshotOption func(*domain.Snapshot)

func WithCapturedAt(t time.Time) SnapshotOption {
	return func(s *domain.Snapshot) {
		s.CapturedAt = t
	}
}

func NewTestSnapshot(projectID string, phases []domain.Phase, opts ...SnapshotOption) *domain.Snapshot {
	s := &domain.Snapshot{
		ID:         uuid.New().String(),
		ProjectID:  projectID,
		CapturedAt: time.Now().UTC(),
		Phases:     phases,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resource options
type ResourceOption func(*domain.Resource)

func WithCapacity(perDay float64) ResourceOption {
	return func(r *domain.Resource) {
		r.CapacityPerDay = perDay
	}
}

func WithInactive() ResourceOption {
	return func(r *domain.Resource) {
		r.Active = false
	}
}

func NewTestResource(name string, opts ...ResourceOption) *domain.Resource {
	r := &domain.Resource{
		ID:             uuid.New().String(),
		Name:           name,
		CapacityPerDay: 1,
		Active:         true,
		CreatedAt:      time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func NewTestBlackout(resourceID, start, end string) *domain.Blackout {
	return &domain.Blackout{
		ID:         uuid.New().String(),
		ResourceID: resourceID,
		StartDate:  Date(start),
		EndDate:    Date(end),
	}
}

func NewTestAllocation(resourceID, projectID, start, end string) *domain.Allocation {
	return &domain.Allocation{
		ID:         uuid.New().String(),
		ResourceID: resourceID,
		ProjectID:  projectID,
		StartDate:  Date(start),
		EndDate:    Date(end),
	}
}
