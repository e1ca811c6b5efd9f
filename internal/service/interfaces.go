package service

import (
	"context"

	"github.com/tomwrenn/gantry/internal/contract"
	"github.com/tomwrenn/gantry/internal/domain"
)

type ScheduleService interface {
	Shift(ctx context.Context, req contract.ShiftRequest) (*contract.ShiftResponse, error)
	SetSchedule(ctx context.Context, req contract.SetScheduleRequest) (*contract.SetScheduleResponse, error)
	History(ctx context.Context, projectID string, limit int) ([]domain.AuditEntry, error)
}

type StatusService interface {
	GetStatus(ctx context.Context, req contract.StatusRequest) (*contract.StatusResponse, error)
}

type MilestoneService interface {
	Recompute(ctx context.Context, req contract.RecomputeRequest) (*contract.RecomputeResponse, error)
	SetRule(ctx context.Context, projectID string, rule domain.AnchorRule) error
	RemoveRule(ctx context.Context, projectID, milestoneKey string) error
	ListMilestones(ctx context.Context, projectID string) ([]domain.Milestone, error)
}

type CapacityService interface {
	Utilization(ctx context.Context, req contract.CapacityRequest) (*contract.CapacityResponse, error)
}

type ResourceService interface {
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
