package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestPhaseValidate_EndBeforeStart(t *testing.T) {
	p := Phase{
		Name:      "Framing",
		StartDate: datePtr(2024, 2, 14),
		EndDate:   datePtr(2024, 2, 1),
	}
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "precedes")
}

func TestPhaseValidate_PartialDatesAllowed(t *testing.T) {
	p := Phase{Name: "Roofing", StartDate: datePtr(2024, 5, 1)}
	assert.NoError(t, p.Validate())

	p = Phase{Name: "Roofing"}
	assert.NoError(t, p.Validate())
}

func TestPhaseDurationDays(t *testing.T) {
	p := Phase{
		Name:      "Drywall",
		StartDate: datePtr(2024, 4, 1),
		EndDate:   datePtr(2024, 4, 10),
	}
	d, ok := p.DurationDays()
	require.True(t, ok)
	assert.Equal(t, 9, d)

	unscheduled := Phase{Name: "Punch List"}
	_, ok = unscheduled.DurationDays()
	assert.False(t, ok)
}

func TestPhaseDurationDays_IgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2024, 4, 1, 23, 30, 0, 0, time.UTC)
	end := time.Date(2024, 4, 3, 0, 15, 0, 0, time.UTC)
	p := Phase{Name: "Paint", StartDate: &start, EndDate: &end}
	d, ok := p.DurationDays()
	require.True(t, ok)
	assert.Equal(t, 2, d)
}

func TestSnapshotValidate_UnknownDependency(t *testing.T) {
	dep := "Foundation"
	s := Snapshot{
		ProjectID: "p1",
		Phases: []Phase{
			{Name: "Framing", DependsOn: &dep},
		},
	}
	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown phase")
}

func TestSnapshotValidate_SelfDependency(t *testing.T) {
	self := "Framing"
	s := Snapshot{
		ProjectID: "p1",
		Phases:    []Phase{{Name: "Framing", DependsOn: &self}},
	}
	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "depends on itself")
}

func TestAnchorRuleValidate(t *testing.T) {
	valid := AnchorRule{MilestoneKey: "Draw5", PhaseMatch: "insulation", Kind: AnchorPhaseStartMinus, OffsetDays: 1}
	assert.NoError(t, valid.Validate())

	noKey := AnchorRule{Kind: AnchorPhaseEnd, PhaseMatch: "framing"}
	assert.Error(t, noKey.Validate())

	badKind := AnchorRule{MilestoneKey: "Draw1", Kind: AnchorKind("phase_midpoint")}
	assert.Error(t, badKind.Validate())

	noMatch := AnchorRule{MilestoneKey: "Draw2", Kind: AnchorPhaseEnd}
	assert.Error(t, noMatch.Validate())

	finalEnd := AnchorRule{MilestoneKey: "Draw7", Kind: AnchorProjectFinalEnd}
	assert.NoError(t, finalEnd.Validate())
}
