package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tomwrenn/gantry/internal/schedule"
)

// --- ShiftRequest constructor defaults ---

func TestNewShiftRequest_SetsDefaults(t *testing.T) {
	req := NewShiftRequest("proj-1", []string{"Drywall"}, 2)

	assert.Equal(t, "proj-1", req.ProjectID)
	assert.Equal(t, []string{"Drywall"}, req.Phases)
	assert.Equal(t, 2, req.DeltaDays)
	assert.False(t, req.Cascade)
	assert.Equal(t, "cli", req.Actor)
	assert.Nil(t, req.Now)
	assert.False(t, req.DryRun)
}

func TestNewShiftRequest_ZeroDelta_Preserved(t *testing.T) {
	// Zero is preserved in the DTO; the no-op rule lives in the engine
	req := NewShiftRequest("proj-1", nil, 0)
	assert.Equal(t, 0, req.DeltaDays)
}

func TestNewShiftRequest_NegativeDelta_Preserved(t *testing.T) {
	req := NewShiftRequest("proj-1", []string{"Paint"}, -5)
	assert.Equal(t, -5, req.DeltaDays)
}

// --- StatusRequest constructor defaults ---

func TestNewStatusRequest_SetsDefaults(t *testing.T) {
	req := NewStatusRequest("proj-1")

	assert.Equal(t, "proj-1", req.ProjectID)
	assert.True(t, req.IncludeTimeline)
	assert.True(t, req.IncludeMilestones)
	assert.Nil(t, req.Now)
}

// --- CapacityRequest constructor defaults ---

func TestNewCapacityRequest_SetsDefaults(t *testing.T) {
	req := NewCapacityRequest()

	assert.Equal(t, schedule.DefaultHorizonWeeks, req.HorizonWeeks)
	assert.True(t, req.ActiveOnly)
	assert.Nil(t, req.From)
}

// --- Error formatting ---

func TestShiftError_FormatsCodeAndMessage(t *testing.T) {
	err := &ShiftError{Code: ShiftErrUnknownPhase, Message: `no phase named "Moat"`}
	assert.Equal(t, `UNKNOWN_PHASE: no phase named "Moat"`, err.Error())
}
