package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tomwrenn/gantry/internal/contract"
	"github.com/tomwrenn/gantry/internal/db"
	"github.com/tomwrenn/gantry/internal/domain"
	"github.com/tomwrenn/gantry/internal/repository"
	"github.com/tomwrenn/gantry/internal/schedule"
)

type scheduleService struct {
	snapshots  repository.SnapshotRepo
	audits     repository.AuditRepo
	rules      repository.AnchorRuleRepo
	milestones repository.MilestoneRepo
	uow        db.UnitOfWork
	observer   UseCaseObserver

	// Edits to the same project are serialized; different projects
	// proceed concurrently.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewScheduleService(
	snapshots repository.SnapshotRepo,
	audits repository.AuditRepo,
	rules repository.AnchorRuleRepo,
	milestones repository.MilestoneRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ScheduleService {
	return &scheduleService{
		snapshots:  snapshots,
		audits:     audits,
		rules:      rules,
		milestones: milestones,
		uow:        uow,
		observer:   useCaseObserverOrNoop(observers),
		locks:      make(map[string]*sync.Mutex),
	}
}

func (s *scheduleService) projectLock(projectID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[projectID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[projectID] = lock
	}
	return lock
}

func (s *scheduleService) Shift(ctx context.Context, req contract.ShiftRequest) (resp *contract.ShiftResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"project": req.ProjectID,
		"delta":   req.DeltaDays,
		"cascade": req.Cascade,
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "shift",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	lock := s.projectLock(req.ProjectID)
	lock.Lock()
	defer lock.Unlock()

	// Read the clock under the lock so captured_at order matches edit
	// order; GetLatest sorts by captured_at.
	now := time.Now().UTC()
	if req.Now != nil {
		now = *req.Now
	}

	snap, err := s.snapshots.GetLatest(ctx, req.ProjectID)
	if err != nil {
		if errors.Is(err, repository.ErrSnapshotNotFound) {
			return nil, &contract.ShiftError{
				Code:    contract.ShiftErrNoSchedule,
				Message: fmt.Sprintf("project %q has no schedule", req.ProjectID),
			}
		}
		return nil, fmt.Errorf("loading latest snapshot: %w", err)
	}

	shifted, records, err := schedule.BulkShift(snap.Phases, req.Phases, req.DeltaDays, req.Cascade)
	if err != nil {
		return nil, shiftErrorFrom(err)
	}

	if req.DeltaDays == 0 || len(records) == 0 {
		// Nothing moved; no snapshot, no audit.
		return &contract.ShiftResponse{
			AppliedAt:  now,
			SnapshotID: snap.ID,
			DeltaDays:  req.DeltaDays,
			DryRun:     req.DryRun,
		}, nil
	}

	notices := schedule.Diff(snap.Phases, shifted)
	milestoneDeltas, changedMilestones, err := s.milestoneDeltas(ctx, req.ProjectID, shifted, now)
	if err != nil {
		return nil, err
	}

	resp = &contract.ShiftResponse{
		AppliedAt:  now,
		DeltaDays:  req.DeltaDays,
		DryRun:     req.DryRun,
		Shifts:     shiftsFromRecords(records),
		Notices:    notices,
		Milestones: milestoneDeltas,
	}
	if req.DryRun {
		resp.SnapshotID = snap.ID
		return resp, nil
	}

	newSnap := &domain.Snapshot{
		ID:         uuid.New().String(),
		ProjectID:  req.ProjectID,
		CapturedAt: now,
		Phases:     shifted,
	}
	entries := auditEntriesFromRecords(req, records, now)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteSnapshotRepo(tx).Create(ctx, newSnap); err != nil {
			return err
		}
		if err := repository.NewSQLiteAuditRepo(tx).Append(ctx, entries); err != nil {
			return err
		}
		txMilestones := repository.NewSQLiteMilestoneRepo(tx)
		for i := range changedMilestones {
			if err := txMilestones.Upsert(ctx, &changedMilestones[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, &contract.ShiftError{
			Code:    contract.ShiftErrInternal,
			Message: fmt.Sprintf("persisting shift: %v", err),
		}
	}

	resp.SnapshotID = newSnap.ID
	fields["phases_moved"] = len(records)
	return resp, nil
}

func (s *scheduleService) SetSchedule(ctx context.Context, req contract.SetScheduleRequest) (resp *contract.SetScheduleResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"project": req.ProjectID,
		"phases":  len(req.Phases),
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "set-schedule",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	newSnap := &domain.Snapshot{
		ID:        uuid.New().String(),
		ProjectID: req.ProjectID,
		Phases:    req.Phases,
	}
	if err := newSnap.Validate(); err != nil {
		return nil, &contract.ShiftError{
			Code:    contract.ShiftErrInvalidSchedule,
			Message: err.Error(),
		}
	}
	arena, err := schedule.NewArena(req.Phases)
	if err != nil {
		return nil, &contract.ShiftError{
			Code:    contract.ShiftErrInvalidSchedule,
			Message: err.Error(),
		}
	}
	if err := arena.DetectCycle(); err != nil {
		return nil, &contract.ShiftError{
			Code:    contract.ShiftErrDependencyCycle,
			Message: err.Error(),
		}
	}

	lock := s.projectLock(req.ProjectID)
	lock.Lock()
	defer lock.Unlock()

	now := time.Now().UTC()
	if req.Now != nil {
		now = *req.Now
	}
	newSnap.CapturedAt = now

	var previous []domain.Phase
	prev, err := s.snapshots.GetLatest(ctx, req.ProjectID)
	if err != nil && !errors.Is(err, repository.ErrSnapshotNotFound) {
		return nil, fmt.Errorf("loading latest snapshot: %w", err)
	}
	if prev != nil {
		previous = prev.Phases
	}

	notices := schedule.Diff(previous, req.Phases)
	milestoneDeltas, changedMilestones, err := s.milestoneDeltas(ctx, req.ProjectID, req.Phases, now)
	if err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteSnapshotRepo(tx).Create(ctx, newSnap); err != nil {
			return err
		}
		txMilestones := repository.NewSQLiteMilestoneRepo(tx)
		for i := range changedMilestones {
			if err := txMilestones.Upsert(ctx, &changedMilestones[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, &contract.ShiftError{
			Code:    contract.ShiftErrInternal,
			Message: fmt.Sprintf("persisting schedule: %v", err),
		}
	}

	return &contract.SetScheduleResponse{
		SnapshotID: newSnap.ID,
		CapturedAt: now,
		PhaseCount: len(req.Phases),
		Notices:    notices,
		Milestones: milestoneDeltas,
	}, nil
}

func (s *scheduleService) History(ctx context.Context, projectID string, limit int) ([]domain.AuditEntry, error) {
	return s.audits.ListByProject(ctx, projectID, limit)
}

// milestoneDeltas recomputes anchors against the candidate phase list
// and reports which milestone due dates would change. Malformed rules
// are skipped; they surface through the milestone recompute use case.
func (s *scheduleService) milestoneDeltas(
	ctx context.Context,
	projectID string,
	phases []domain.Phase,
	now time.Time,
) ([]contract.MilestoneDelta, []domain.Milestone, error) {
	rules, err := s.rules.ListByProject(ctx, projectID)
	if err != nil {
		return nil, nil, fmt.Errorf("loading anchor rules: %w", err)
	}
	if len(rules) == 0 {
		return nil, nil, nil
	}

	existing, err := s.milestones.ListByProject(ctx, projectID)
	if err != nil {
		return nil, nil, fmt.Errorf("loading milestones: %w", err)
	}
	before := make(map[string]*time.Time, len(existing))
	for i := range existing {
		before[existing[i].Key] = existing[i].DueDate
	}

	var deltas []contract.MilestoneDelta
	var changed []domain.Milestone
	for _, res := range schedule.RecomputeAnchors(phases, rules, nil) {
		if res.Err != nil {
			continue
		}
		prev := before[res.MilestoneKey]
		if sameDay(prev, res.DueDate) {
			continue
		}
		deltas = append(deltas, contract.MilestoneDelta{
			Key:    res.MilestoneKey,
			Before: prev,
			After:  res.DueDate,
		})
		changed = append(changed, domain.Milestone{
			Key:       res.MilestoneKey,
			ProjectID: projectID,
			DueDate:   res.DueDate,
			UpdatedAt: now,
		})
	}
	return deltas, changed, nil
}

func sameDay(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Format(domain.DateLayout) == b.Format(domain.DateLayout)
}

func shiftErrorFrom(err error) error {
	switch {
	case errors.Is(err, schedule.ErrUnknownPhase):
		return &contract.ShiftError{Code: contract.ShiftErrUnknownPhase, Message: err.Error()}
	case errors.Is(err, schedule.ErrUnscheduledPhase):
		return &contract.ShiftError{Code: contract.ShiftErrUnscheduledPhase, Message: err.Error()}
	case errors.Is(err, schedule.ErrDependencyCycle):
		return &contract.ShiftError{Code: contract.ShiftErrDependencyCycle, Message: err.Error()}
	default:
		return &contract.ShiftError{Code: contract.ShiftErrInternal, Message: err.Error()}
	}
}

func shiftsFromRecords(records []schedule.ShiftRecord) []contract.PhaseShift {
	shifts := make([]contract.PhaseShift, 0, len(records))
	for _, r := range records {
		shifts = append(shifts, contract.PhaseShift{
			PhaseName:   r.PhaseName,
			Cascaded:    r.Cascaded,
			BeforeStart: r.BeforeStart,
			BeforeEnd:   r.BeforeEnd,
			AfterStart:  r.AfterStart,
			AfterEnd:    r.AfterEnd,
		})
	}
	return shifts
}

func auditEntriesFromRecords(req contract.ShiftRequest, records []schedule.ShiftRecord, now time.Time) []domain.AuditEntry {
	entries := make([]domain.AuditEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, domain.AuditEntry{
			ID:          uuid.New().String(),
			ProjectID:   req.ProjectID,
			PhaseName:   r.PhaseName,
			DeltaDays:   r.DeltaDays,
			Cascade:     req.Cascade,
			Cascaded:    r.Cascaded,
			BeforeStart: r.BeforeStart,
			BeforeEnd:   r.BeforeEnd,
			AfterStart:  r.AfterStart,
			AfterEnd:    r.AfterEnd,
			Actor:       req.Actor,
			CreatedAt:   now,
		})
	}
	return entries
}
