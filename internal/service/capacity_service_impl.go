package service

import (
	"context"
	"fmt"
	"time"

	"github.com/tomwrenn/gantry/internal/contract"
	"github.com/tomwrenn/gantry/internal/repository"
	"github.com/tomwrenn/gantry/internal/schedule"
)

type capacityService struct {
	resources   repository.ResourceRepo
	blackouts   repository.BlackoutRepo
	allocations repository.AllocationRepo
	observer    UseCaseObserver
}

func NewCapacityService(
	resources repository.ResourceRepo,
	blackouts repository.BlackoutRepo,
	allocations repository.AllocationRepo,
	observers ...UseCaseObserver,
) CapacityService {
	return &capacityService{
		resources:   resources,
		blackouts:   blackouts,
		allocations: allocations,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *capacityService) Utilization(ctx context.Context, req contract.CapacityRequest) (resp *contract.CapacityResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "capacity-utilization",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	from := time.Now().UTC()
	if req.From != nil {
		from = *req.From
	}
	weeks := req.HorizonWeeks
	if weeks <= 0 {
		weeks = schedule.DefaultHorizonWeeks
	}

	resources, err := s.resources.List(ctx, req.ActiveOnly)
	if err != nil {
		return nil, fmt.Errorf("loading resources: %w", err)
	}

	// The grid origin is the Monday of from's week, so widen the load
	// window left to cover the start of that week.
	windowStart := from.AddDate(0, 0, -6)
	windowEnd := from.AddDate(0, 0, weeks*7)

	blackouts, err := s.blackouts.List(ctx, &windowStart, &windowEnd)
	if err != nil {
		return nil, fmt.Errorf("loading blackouts: %w", err)
	}
	allocations, err := s.allocations.ListOverlapping(ctx, windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("loading allocations: %w", err)
	}

	grid, overbooked, err := schedule.ComputeUtilization(resources, blackouts, allocations, weeks, from)
	if err != nil {
		return nil, &contract.CapacityError{
			Code:    contract.CapacityErrInvalidInterval,
			Message: err.Error(),
		}
	}

	resp = &contract.CapacityResponse{
		GeneratedAt: time.Now().UTC(),
		Weeks:       weeks,
		Grid:        grid,
		Overbooked:  overbooked,
	}
	if len(grid) > 0 {
		resp.WeekStart = grid[0].WeekStart
	}
	fields["resources"] = len(resources)
	fields["overbooked"] = len(overbooked)
	return resp, nil
}
