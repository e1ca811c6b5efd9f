package app

import (
	"context"

	"github.com/tomwrenn/gantry/internal/domain"
)

type StatusUseCase interface {
	GetStatus(ctx context.Context, req StatusRequest) (*StatusResponse, error)
}

type ScheduleUseCase interface {
	Shift(ctx context.Context, req ShiftRequest) (*ShiftResponse, error)
	SetSchedule(ctx context.Context, req SetScheduleRequest) (*SetScheduleResponse, error)
	History(ctx context.Context, projectID string, limit int) ([]domain.AuditEntry, error)
}

type MilestoneUseCase interface {
	Recompute(ctx context.Context, req RecomputeRequest) (*RecomputeResponse, error)
	SetRule(ctx context.Context, projectID string, rule domain.AnchorRule) error
	RemoveRule(ctx context.Context, projectID, milestoneKey string) error
	ListMilestones(ctx context.Context, projectID string) ([]domain.Milestone, error)
}

type CapacityUseCase interface {
	Utilization(ctx context.Context, req CapacityRequest) (*CapacityResponse, error)
}

type ResourceUseCase interface {
	CreateResource(ctx context.Context, name string, capacityPerDay float64) (*domain.Resource, error)
	SetResourceActive(ctx context.Context, id string, active bool) error
	ListResources(ctx context.Context, activeOnly bool) ([]domain.Resource, error)
	AddBlackout(ctx context.Context, b *domain.Blackout) error
	RemoveBlackout(ctx context.Context, id string) error
	ListBlackouts(ctx context.Context, resourceID string) ([]domain.Blackout, error)
	AddAllocation(ctx context.Context, a *domain.Allocation) error
	RemoveAllocation(ctx context.Context, id string) error
	ListAllocations(ctx context.Context, resourceID string) ([]domain.Allocation, error)
}
