package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomwrenn/gantry/internal/contract"
	"github.com/tomwrenn/gantry/internal/domain"
	"github.com/tomwrenn/gantry/internal/repository"
	"github.com/tomwrenn/gantry/internal/schedule"
)

type milestoneService struct {
	snapshots  repository.SnapshotRepo
	rules      repository.AnchorRuleRepo
	milestones repository.MilestoneRepo
	observer   UseCaseObserver
}

func NewMilestoneService(
	snapshots repository.SnapshotRepo,
	rules repository.AnchorRuleRepo,
	milestones repository.MilestoneRepo,
	observers ...UseCaseObserver,
) MilestoneService {
	return &milestoneService{
		snapshots:  snapshots,
		rules:      rules,
		milestones: milestones,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *milestoneService) Recompute(ctx context.Context, req contract.RecomputeRequest) (resp *contract.RecomputeResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project": req.ProjectID}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "recompute-milestones",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	now := time.Now().UTC()
	if req.Now != nil {
		now = *req.Now
	}

	// No schedule yet means phase-anchored rules have nothing to bind
	// to; they evaluate to unset rather than failing.
	var phases []domain.Phase
	snap, err := s.snapshots.GetLatest(ctx, req.ProjectID)
	if err != nil && !errors.Is(err, repository.ErrSnapshotNotFound) {
		return nil, fmt.Errorf("loading latest snapshot: %w", err)
	}
	err = nil
	if snap != nil {
		phases = snap.Phases
	}

	rules, err := s.rules.ListByProject(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("loading anchor rules: %w", err)
	}

	resp = &contract.RecomputeResponse{GeneratedAt: now}

	// Each rule is evaluated and persisted independently; one bad rule
	// or failed write never blocks the rest.
	for _, res := range schedule.RecomputeAnchors(phases, rules, req.External) {
		outcome := contract.MilestoneOutcome{Key: res.MilestoneKey, DueDate: res.DueDate}
		if res.Err != nil {
			outcome.Err = res.Err.Error()
			resp.Outcomes = append(resp.Outcomes, outcome)
			continue
		}

		prev, getErr := s.milestones.GetByKey(ctx, req.ProjectID, res.MilestoneKey)
		var before *time.Time
		if getErr == nil {
			before = prev.DueDate
		}
		outcome.Changed = !sameDay(before, res.DueDate)

		m := domain.Milestone{
			Key:       res.MilestoneKey,
			ProjectID: req.ProjectID,
			DueDate:   res.DueDate,
			UpdatedAt: now,
		}
		if upErr := s.milestones.Upsert(ctx, &m); upErr != nil {
			outcome.Err = upErr.Error()
		}
		resp.Outcomes = append(resp.Outcomes, outcome)
	}

	fields["rules"] = len(rules)
	return resp, nil
}

func (s *milestoneService) SetRule(ctx context.Context, projectID string, rule domain.AnchorRule) error {
	if err := rule.Validate(); err != nil {
		return &contract.MilestoneError{Code: contract.MilestoneErrInvalidRule, Message: err.Error()}
	}
	if err := s.rules.Upsert(ctx, projectID, &rule); err != nil {
		return &contract.MilestoneError{Code: contract.MilestoneErrInternal, Message: err.Error()}
	}
	return nil
}

func (s *milestoneService) RemoveRule(ctx context.Context, projectID, milestoneKey string) error {
	return s.rules.Delete(ctx, projectID, milestoneKey)
}

func (s *milestoneService) ListMilestones(ctx context.Context, projectID string) ([]domain.Milestone, error) {
	return s.milestones.ListByProject(ctx, projectID)
}
