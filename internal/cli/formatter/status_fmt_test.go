package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tomwrenn/gantry/internal/contract"
	"github.com/tomwrenn/gantry/internal/domain"
	"github.com/tomwrenn/gantry/internal/schedule"
	"github.com/tomwrenn/gantry/internal/testutil"
)

func TestFormatStatus_ListsPhasesAndMilestones(t *testing.T) {
	start := testutil.Date("2024-01-08")
	end := testutil.Date("2024-02-29")
	due := testutil.Date("2024-02-29")

	resp := &contract.StatusResponse{
		CurrentPhase: "Foundation",
		ProgressPct:  30,
		Phases: []contract.PhaseLine{
			{Name: "Foundation", Status: domain.PhaseActive, Progress: 30, StartDate: &start, EndDate: &end},
			{Name: "Landscaping", Status: domain.PhaseUnscheduled, Progress: 0},
		},
		Milestones: []contract.MilestoneLine{
			{Key: "Draw5", DueDate: &due},
			{Key: "PoolDeposit"},
		},
	}

	out := FormatStatus(resp)
	assert.Contains(t, out, "Foundation")
	assert.Contains(t, out, "ACTIVE")
	assert.Contains(t, out, "UNSCHEDULED")
	assert.Contains(t, out, "2024-01-08")
	assert.Contains(t, out, "Draw5")
	assert.Contains(t, out, "30%")
	// Unset dates render as a placeholder, never a zero time.
	assert.Contains(t, out, "--")
	assert.NotContains(t, out, "0001-01-01")
}

func TestFormatTimeline_OneRowPerSpan(t *testing.T) {
	out := FormatTimeline([]schedule.BarSpan{
		{Name: "Foundation", Offset: 0.1, Width: 0.3},
		{Name: "A Very Long Phase Name Indeed", Offset: 0.5, Width: 0.2},
	})
	lines := 0
	for _, c := range out {
		if c == '\n' {
			lines++
		}
	}
	assert.Equal(t, 2, lines)
	assert.Contains(t, out, "Foundation")
	// Long names are truncated to keep the strip aligned.
	assert.NotContains(t, out, "A Very Long Phase Name Indeed")
}

func TestRenderTable_PadsColumns(t *testing.T) {
	out := RenderTable([]string{"A", "LONGHEADER"}, [][]string{
		{"x", "y"},
		{"longer", "z"},
	})
	assert.Contains(t, out, "LONGHEADER")
	assert.Contains(t, out, "longer")
}
