package app

import (
	"time"

	"github.com/tomwrenn/gantry/internal/domain"
	"github.com/tomwrenn/gantry/internal/schedule"
)

type StatusRequest struct {
	ProjectID         string
	Now               *time.Time
	IncludeTimeline   bool
	IncludeMilestones bool
}

func NewStatusRequest(projectID string) StatusRequest {
	return StatusRequest{
		ProjectID:         projectID,
		IncludeTimeline:   true,
		IncludeMilestones: true,
	}
}

// PhaseLine is one phase's derived state plus its scheduled dates.
type PhaseLine struct {
	Name      string
	SortOrder int
	Status    domain.PhaseStatus
	Progress  int
	StartDate *time.Time
	EndDate   *time.Time
}

type MilestoneLine struct {
	Key     string
	DueDate *time.Time
}

type StatusResponse struct {
	GeneratedAt  time.Time
	SnapshotID   string
	CurrentPhase string
	ProgressPct  int
	Phases       []PhaseLine
	Milestones   []MilestoneLine
	Timeline     []schedule.BarSpan
	// CacheHit reports whether the resolution came from the per-day
	// cache rather than a fresh computation.
	CacheHit bool
}

type StatusErrorCode string

const (
	StatusErrInternal StatusErrorCode = "INTERNAL_ERROR"
)

type StatusError struct {
	Code    StatusErrorCode
	Message string
}

func (e *StatusError) Error() string {
	return string(e.Code) + ": " + e.Message
}
