package app

import (
	"time"
)

type RecomputeRequest struct {
	ProjectID string
	// External supplies dates for external_event rules, keyed by
	// milestone key.
	External map[string]time.Time
	Now      *time.Time
}

func NewRecomputeRequest(projectID string) RecomputeRequest {
	return RecomputeRequest{ProjectID: projectID}
}

// MilestoneOutcome is the per-rule result of a recompute. Err carries a
// malformed rule's message; one rule's failure never blocks the others.
type MilestoneOutcome struct {
	Key     string
	DueDate *time.Time
	Changed bool
	Err     string
}

type RecomputeResponse struct {
	GeneratedAt time.Time
	Outcomes    []MilestoneOutcome
}

type MilestoneErrorCode string

const (
	MilestoneErrInvalidRule MilestoneErrorCode = "INVALID_RULE"
	MilestoneErrInternal    MilestoneErrorCode = "INTERNAL_ERROR"
)

type MilestoneError struct {
	Code    MilestoneErrorCode
	Message string
}

func (e *MilestoneError) Error() string {
	return string(e.Code) + ": " + e.Message
}
