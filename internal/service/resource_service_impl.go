package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomwrenn/gantry/internal/domain"
	"github.com/tomwrenn/gantry/internal/repository"
)

type resourceService struct {
	resources   repository.ResourceRepo
	blackouts   repository.BlackoutRepo
	allocations repository.AllocationRepo
}

func NewResourceService(
	resources repository.ResourceRepo,
	blackouts repository.BlackoutRepo,
	allocations repository.AllocationRepo,
) ResourceService {
	return &resourceService{
		resources:   resources,
		blackouts:   blackouts,
		allocations: allocations,
	}
}

func (s *resourceService) CreateResource(ctx context.Context, name string, capacityPerDay float64) (*domain.Resource, error) {
	if name == "" {
		return nil, fmt.Errorf("resource name is required")
	}
	if capacityPerDay < 0 {
		return nil, fmt.Errorf("capacity per day must not be negative")
	}
	r := &domain.Resource{
		ID:             uuid.New().String(),
		Name:           name,
		CapacityPerDay: capacityPerDay,
		Active:         true,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.resources.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *resourceService) SetResourceActive(ctx context.Context, id string, active bool) error {
	if _, err := s.resources.GetByID(ctx, id); err != nil {
		return err
	}
	return s.resources.SetActive(ctx, id, active)
}

func (s *resourceService) ListResources(ctx context.Context, activeOnly bool) ([]domain.Resource, error) {
	return s.resources.List(ctx, activeOnly)
}

func (s *resourceService) AddBlackout(ctx context.Context, b *domain.Blackout) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if _, err := s.resources.GetByID(ctx, b.ResourceID); err != nil {
		return err
	}
	return s.blackouts.Create(ctx, b)
}

func (s *resourceService) RemoveBlackout(ctx context.Context, id string) error {
	return s.blackouts.Delete(ctx, id)
}

func (s *resourceService) ListBlackouts(ctx context.Context, resourceID string) ([]domain.Blackout, error) {
	return s.blackouts.ListByResource(ctx, resourceID)
}

func (s *resourceService) AddAllocation(ctx context.Context, a *domain.Allocation) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if _, err := s.resources.GetByID(ctx, a.ResourceID); err != nil {
		return err
	}
	return s.allocations.Create(ctx, a)
}

func (s *resourceService) RemoveAllocation(ctx context.Context, id string) error {
	return s.allocations.Delete(ctx, id)
}

func (s *resourceService) ListAllocations(ctx context.Context, resourceID string) ([]domain.Allocation, error) {
	return s.allocations.ListByResource(ctx, resourceID)
}
