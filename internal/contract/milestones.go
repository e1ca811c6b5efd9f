package contract

import "github.com/tomwrenn/gantry/internal/app"

type RecomputeRequest = app.RecomputeRequest

func NewRecomputeRequest(projectID string) RecomputeRequest {
	return app.NewRecomputeRequest(projectID)
}

type MilestoneOutcome = app.MilestoneOutcome

type RecomputeResponse = app.RecomputeResponse

type MilestoneErrorCode = app.MilestoneErrorCode

const (
	MilestoneErrInvalidRule MilestoneErrorCode = app.MilestoneErrInvalidRule
	MilestoneErrInternal    MilestoneErrorCode = app.MilestoneErrInternal
)

type MilestoneError = app.MilestoneError
