package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomwrenn/gantry/internal/domain"
)

// mkPhase builds a phase from "2006-01-02" date strings; empty strings
// leave the date unset. Shared across the package's tests.
func mkPhase(name string, sortOrder int, start, end string) domain.Phase {
	p := domain.Phase{Name: name, SortOrder: sortOrder}
	if start != "" {
		t, err := time.Parse(domain.DateLayout, start)
		if err != nil {
			panic(err)
		}
		p.StartDate = &t
	}
	if end != "" {
		t, err := time.Parse(domain.DateLayout, end)
		if err != nil {
			panic(err)
		}
		p.EndDate = &t
	}
	return p
}

func mkDependent(name string, sortOrder int, start, end, dependsOn string) domain.Phase {
	p := mkPhase(name, sortOrder, start, end)
	p.DependsOn = &dependsOn
	return p
}

func day(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestResolve_SingleActivePhase(t *testing.T) {
	phases := []domain.Phase{
		mkPhase("Foundation", 1, "2024-01-01", "2024-01-20"),
		mkPhase("Framing", 2, "2024-02-01", "2024-02-14"),
		mkPhase("Insulation", 3, "2024-03-01", "2024-03-10"),
	}

	res := Resolve(phases, day("2024-02-05"))

	assert.Equal(t, "Framing", res.CurrentPhase)
	assert.Equal(t, 40, res.ProgressPct)
	require.Len(t, res.Phases, 3)
	assert.Equal(t, domain.PhaseCompleted, res.Phases[0].Status)
	assert.Equal(t, domain.PhaseActive, res.Phases[1].Status)
	assert.Equal(t, domain.PhaseUpcoming, res.Phases[2].Status)
}

func TestResolve_InclusiveBoundaries(t *testing.T) {
	phases := []domain.Phase{mkPhase("Framing", 1, "2024-02-01", "2024-02-14")}

	assert.Equal(t, "Framing", Resolve(phases, day("2024-02-01")).CurrentPhase, "start day is active")
	assert.Equal(t, "Framing", Resolve(phases, day("2024-02-14")).CurrentPhase, "end day is active")

	after := Resolve(phases, day("2024-02-15"))
	assert.Equal(t, domain.PhaseCompleted, after.Phases[0].Status)
}

func TestResolve_TimeOfDayNeverMovesTheDay(t *testing.T) {
	phases := []domain.Phase{mkPhase("Framing", 1, "2024-02-01", "2024-02-14")}

	// 23:59 on the last day is still inside the phase.
	lateEvening := time.Date(2024, 2, 14, 23, 59, 0, 0, time.UTC)
	res := Resolve(phases, lateEvening)
	assert.Equal(t, domain.PhaseActive, res.Phases[0].Status)
}

func TestResolve_OverlapTieBreak_LargestSortOrder(t *testing.T) {
	phases := []domain.Phase{
		mkPhase("Rough-Ins", 5, "2024-03-01", "2024-03-20"),
		mkPhase("Insulation", 7, "2024-03-10", "2024-03-25"),
		mkPhase("Drywall", 6, "2024-03-12", "2024-03-30"),
	}

	res := Resolve(phases, day("2024-03-15"))
	assert.Equal(t, "Insulation", res.CurrentPhase)

	// Deterministic: same input ordering, same answer.
	again := Resolve(phases, day("2024-03-15"))
	assert.Equal(t, res, again)
}

func TestResolve_OverlapTieBreak_EqualSortOrderKeepsFirst(t *testing.T) {
	phases := []domain.Phase{
		mkPhase("Flooring", 4, "2024-06-01", "2024-06-15"),
		mkPhase("Paint", 4, "2024-06-05", "2024-06-20"),
	}

	res := Resolve(phases, day("2024-06-10"))
	assert.Equal(t, "Flooring", res.CurrentPhase)
}

func TestResolve_NoneActive_LatestCompletedWins(t *testing.T) {
	phases := []domain.Phase{
		mkPhase("Foundation", 1, "2024-01-01", "2024-01-20"),
		mkPhase("Framing", 2, "2024-02-01", "2024-02-14"),
	}

	res := Resolve(phases, day("2024-02-20"))
	assert.Equal(t, "Framing", res.CurrentPhase)
	assert.Equal(t, 40, res.ProgressPct)
}

func TestResolve_CompletedTie_LaterPositionWins(t *testing.T) {
	phases := []domain.Phase{
		mkPhase("Rough-Ins", 1, "2024-03-01", "2024-03-15"),
		mkPhase("Insulation", 2, "2024-03-05", "2024-03-15"),
	}

	res := Resolve(phases, day("2024-04-01"))
	assert.Equal(t, "Insulation", res.CurrentPhase)
}

func TestResolve_AllUpcoming_SyntheticFloor(t *testing.T) {
	phases := []domain.Phase{
		mkPhase("Foundation", 1, "2030-01-01", "2030-01-20"),
		mkPhase("Framing", 2, "2030-02-01", "2030-02-14"),
	}

	res := Resolve(phases, day("2024-01-01"))
	assert.Equal(t, SyntheticUpcoming, res.CurrentPhase)
	assert.Equal(t, 10, res.ProgressPct)
}

func TestResolve_EmptyTimeline(t *testing.T) {
	res := Resolve(nil, day("2024-01-01"))
	assert.Equal(t, FallbackEmpty, res.CurrentPhase)
	assert.Equal(t, 0, res.ProgressPct)
	assert.Empty(t, res.Phases)
}

func TestResolve_UnscheduledPhasesExcluded(t *testing.T) {
	phases := []domain.Phase{
		mkPhase("Foundation", 1, "2024-01-01", ""),
		mkPhase("Framing", 2, "", ""),
	}

	res := Resolve(phases, day("2024-01-10"))
	assert.Equal(t, FallbackEmpty, res.CurrentPhase)
	assert.Equal(t, domain.PhaseUnscheduled, res.Phases[0].Status)
	assert.Equal(t, domain.PhaseUnscheduled, res.Phases[1].Status)
}

func TestResolve_Idempotent(t *testing.T) {
	phases := []domain.Phase{
		mkPhase("Foundation", 1, "2024-01-01", "2024-01-20"),
		mkPhase("Framing", 2, "2024-02-01", "2024-02-14"),
		mkPhase("Insulation", 3, "", ""),
	}

	first := Resolve(phases, day("2024-02-05"))
	second := Resolve(phases, day("2024-02-05"))
	assert.Equal(t, first, second)
}

func TestProgressFor_CaseInsensitive(t *testing.T) {
	assert.Equal(t, 40, ProgressFor("framing"))
	assert.Equal(t, 70, ProgressFor("DRYWALL"))
	assert.Equal(t, 0, ProgressFor("Landscaping Extras"))
}
