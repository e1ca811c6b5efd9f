package app

import (
	"time"

	"github.com/tomwrenn/gantry/internal/domain"
)

// SetScheduleRequest replaces a project's timeline wholesale. The phase
// list becomes a new immutable snapshot; the prior snapshot is retained
// for diffing.
type SetScheduleRequest struct {
	ProjectID string
	Phases    []domain.Phase
	Actor     string
	Now       *time.Time
}

func NewSetScheduleRequest(projectID string, phases []domain.Phase) SetScheduleRequest {
	return SetScheduleRequest{
		ProjectID: projectID,
		Phases:    phases,
		Actor:     "cli",
	}
}

type SetScheduleResponse struct {
	SnapshotID string
	CapturedAt time.Time
	PhaseCount int
	Notices    []string
	Milestones []MilestoneDelta
}
