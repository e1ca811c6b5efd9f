package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tomwrenn/gantry/internal/contract"
	"github.com/tomwrenn/gantry/internal/domain"
	"github.com/tomwrenn/gantry/internal/repository"
	"github.com/tomwrenn/gantry/internal/schedule"
)

// cachedResolution is a project's last resolution with the snapshot
// and calendar day it was computed for.
type cachedResolution struct {
	snapshotID string
	day        string
	res        schedule.Resolution
}

type statusService struct {
	snapshots  repository.SnapshotRepo
	milestones repository.MilestoneRepo

	// Resolution is pure per (snapshot, calendar day). One entry per
	// project: a new snapshot or a new day overwrites, so the cache
	// stays bounded by project count.
	cacheMu sync.RWMutex
	cache   map[string]cachedResolution
}

func NewStatusService(snapshots repository.SnapshotRepo, milestones repository.MilestoneRepo) StatusService {
	return &statusService{
		snapshots:  snapshots,
		milestones: milestones,
		cache:      make(map[string]cachedResolution),
	}
}

func (s *statusService) GetStatus(ctx context.Context, req contract.StatusRequest) (*contract.StatusResponse, error) {
	now := time.Now().UTC()
	if req.Now != nil {
		now = *req.Now
	}

	snap, err := s.snapshots.GetLatest(ctx, req.ProjectID)
	if err != nil {
		if errors.Is(err, repository.ErrSnapshotNotFound) {
			// A project with no schedule reports the empty-timeline
			// fallback rather than an error.
			return &contract.StatusResponse{
				GeneratedAt:  now,
				CurrentPhase: schedule.FallbackEmpty,
				ProgressPct:  0,
			}, nil
		}
		return nil, fmt.Errorf("loading latest snapshot: %w", err)
	}

	res, hit := s.resolve(req.ProjectID, snap, now)

	resp := &contract.StatusResponse{
		GeneratedAt:  now,
		SnapshotID:   snap.ID,
		CurrentPhase: res.CurrentPhase,
		ProgressPct:  res.ProgressPct,
		CacheHit:     hit,
	}

	resp.Phases = make([]contract.PhaseLine, len(snap.Phases))
	for i := range snap.Phases {
		p := &snap.Phases[i]
		st := res.Phases[i]
		resp.Phases[i] = contract.PhaseLine{
			Name:      p.Name,
			SortOrder: p.SortOrder,
			Status:    st.Status,
			Progress:  st.Progress,
			StartDate: p.StartDate,
			EndDate:   p.EndDate,
		}
	}

	if req.IncludeTimeline {
		resp.Timeline = schedule.Layout(snap.Phases)
	}

	if req.IncludeMilestones {
		milestones, err := s.milestones.ListByProject(ctx, req.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("loading milestones: %w", err)
		}
		for _, m := range milestones {
			resp.Milestones = append(resp.Milestones, contract.MilestoneLine{Key: m.Key, DueDate: m.DueDate})
		}
	}

	return resp, nil
}

func (s *statusService) resolve(projectID string, snap *domain.Snapshot, now time.Time) (schedule.Resolution, bool) {
	day := now.Format(domain.DateLayout)

	s.cacheMu.RLock()
	entry, ok := s.cache[projectID]
	s.cacheMu.RUnlock()
	if ok && entry.snapshotID == snap.ID && entry.day == day {
		return entry.res, true
	}

	res := schedule.Resolve(snap.Phases, now)
	s.cacheMu.Lock()
	s.cache[projectID] = cachedResolution{snapshotID: snap.ID, day: day, res: res}
	s.cacheMu.Unlock()
	return res, false
}
