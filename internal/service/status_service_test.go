package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomwrenn/gantry/internal/contract"
	"github.com/tomwrenn/gantry/internal/domain"
	"github.com/tomwrenn/gantry/internal/testutil"
)

func statusAt(day string) contract.StatusRequest {
	req := contract.NewStatusRequest("proj-1")
	now := testutil.Date(day)
	req.Now = &now
	return req
}

func TestStatusService_NoSchedule_FallsBack(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.status.GetStatus(ctx, statusAt("2024-03-15"))
	require.NoError(t, err)
	assert.Equal(t, "Planning & Permits", resp.CurrentPhase)
	assert.Equal(t, 0, resp.ProgressPct)
	assert.Empty(t, resp.Phases)
}

func TestStatusService_ActivePhase(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.schedule.SetSchedule(ctx, contract.NewSetScheduleRequest("proj-1", housePhases()))
	require.NoError(t, err)

	resp, err := env.status.GetStatus(ctx, statusAt("2024-03-15"))
	require.NoError(t, err)
	assert.Equal(t, "Framing", resp.CurrentPhase)
	assert.Equal(t, 40, resp.ProgressPct)
	require.Len(t, resp.Phases, 3)
	assert.Equal(t, domain.PhaseCompleted, resp.Phases[0].Status)
	assert.Equal(t, domain.PhaseActive, resp.Phases[1].Status)
	assert.Equal(t, domain.PhaseUpcoming, resp.Phases[2].Status)
	assert.NotEmpty(t, resp.Timeline)
}

func TestStatusService_CachesPerSnapshotAndDay(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.schedule.SetSchedule(ctx, contract.NewSetScheduleRequest("proj-1", housePhases()))
	require.NoError(t, err)

	first, err := env.status.GetStatus(ctx, statusAt("2024-03-15"))
	require.NoError(t, err)
	assert.False(t, first.CacheHit)

	second, err := env.status.GetStatus(ctx, statusAt("2024-03-15"))
	require.NoError(t, err)
	assert.True(t, second.CacheHit)
	assert.Equal(t, first.CurrentPhase, second.CurrentPhase)

	// A different day misses.
	otherDay, err := env.status.GetStatus(ctx, statusAt("2024-05-01"))
	require.NoError(t, err)
	assert.False(t, otherDay.CacheHit)

	// A schedule edit produces a new snapshot, which also misses.
	_, err = env.schedule.Shift(ctx, contract.NewShiftRequest("proj-1", []string{"Drywall"}, 2))
	require.NoError(t, err)
	afterEdit, err := env.status.GetStatus(ctx, statusAt("2024-03-15"))
	require.NoError(t, err)
	assert.False(t, afterEdit.CacheHit)
}

func TestStatusService_CacheBoundedPerProject(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.schedule.SetSchedule(ctx, contract.NewSetScheduleRequest("proj-1", housePhases()))
	require.NoError(t, err)

	for _, d := range []string{"2024-03-15", "2024-04-01", "2024-05-01"} {
		_, err := env.status.GetStatus(ctx, statusAt(d))
		require.NoError(t, err)
	}
	_, err = env.schedule.Shift(ctx, contract.NewShiftRequest("proj-1", []string{"Drywall"}, 2))
	require.NoError(t, err)
	_, err = env.status.GetStatus(ctx, statusAt("2024-03-15"))
	require.NoError(t, err)

	// Superseded snapshots and past days are overwritten in place.
	svc := env.status.(*statusService)
	svc.cacheMu.RLock()
	defer svc.cacheMu.RUnlock()
	assert.Len(t, svc.cache, 1)
}

func TestStatusService_TimeAnomaly_BeforeAllPhases(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.schedule.SetSchedule(ctx, contract.NewSetScheduleRequest("proj-1", housePhases()))
	require.NoError(t, err)

	resp, err := env.status.GetStatus(ctx, statusAt("2023-06-01"))
	require.NoError(t, err)
	assert.Equal(t, "Preconstruction", resp.CurrentPhase)
	assert.Equal(t, 10, resp.ProgressPct)
}

func TestStatusService_IncludesMilestones(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.schedule.SetSchedule(ctx, contract.NewSetScheduleRequest("proj-1", housePhases()))
	require.NoError(t, err)
	require.NoError(t, env.milestone.SetRule(ctx, "proj-1", domain.AnchorRule{
		MilestoneKey: "Draw5",
		PhaseMatch:   "foundation",
		Kind:         domain.AnchorPhaseEnd,
	}))
	_, err = env.milestone.Recompute(ctx, contract.NewRecomputeRequest("proj-1"))
	require.NoError(t, err)

	resp, err := env.status.GetStatus(ctx, statusAt("2024-03-15"))
	require.NoError(t, err)
	require.Len(t, resp.Milestones, 1)
	assert.Equal(t, "Draw5", resp.Milestones[0].Key)
	require.NotNil(t, resp.Milestones[0].DueDate)
	assert.Equal(t, "2024-02-29", resp.Milestones[0].DueDate.Format(time.DateOnly))
}
