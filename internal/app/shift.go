package app

import (
	"time"
)

type ShiftRequest struct {
	ProjectID string
	Phases    []string
	DeltaDays int
	Cascade   bool
	Actor     string
	Now       *time.Time
	DryRun    bool
}

func NewShiftRequest(projectID string, phases []string, deltaDays int) ShiftRequest {
	return ShiftRequest{
		ProjectID: projectID,
		Phases:    phases,
		DeltaDays: deltaDays,
		Actor:     "cli",
	}
}

// PhaseShift is one phase actually moved by a shift, direct or cascaded.
type PhaseShift struct {
	PhaseName   string
	Cascaded    bool
	BeforeStart time.Time
	BeforeEnd   time.Time
	AfterStart  time.Time
	AfterEnd    time.Time
}

// MilestoneDelta reports a milestone due date before and after a
// schedule edit. Nil means the milestone had no date on that side.
type MilestoneDelta struct {
	Key    string
	Before *time.Time
	After  *time.Time
}

type ShiftResponse struct {
	AppliedAt  time.Time
	SnapshotID string
	DeltaDays  int
	DryRun     bool
	Shifts     []PhaseShift
	Notices    []string
	Milestones []MilestoneDelta
}

type ShiftErrorCode string

const (
	ShiftErrUnknownPhase     ShiftErrorCode = "UNKNOWN_PHASE"
	ShiftErrUnscheduledPhase ShiftErrorCode = "UNSCHEDULED_PHASE"
	ShiftErrDependencyCycle  ShiftErrorCode = "DEPENDENCY_CYCLE"
	ShiftErrNoSchedule       ShiftErrorCode = "NO_SCHEDULE"
	ShiftErrInvalidSchedule  ShiftErrorCode = "INVALID_SCHEDULE"
	ShiftErrInternal         ShiftErrorCode = "INTERNAL_ERROR"
)

type ShiftError struct {
	Code    ShiftErrorCode
	Message string
}

func (e *ShiftError) Error() string {
	return string(e.Code) + ": " + e.Message
}
