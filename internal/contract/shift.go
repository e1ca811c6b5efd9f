package contract

import (
	"github.com/tomwrenn/gantry/internal/app"
	"github.com/tomwrenn/gantry/internal/domain"
)

type ShiftRequest = app.ShiftRequest

func NewShiftRequest(projectID string, phases []string, deltaDays int) ShiftRequest {
	return app.NewShiftRequest(projectID, phases, deltaDays)
}

type PhaseShift = app.PhaseShift

type MilestoneDelta = app.MilestoneDelta

type ShiftResponse = app.ShiftResponse

type ShiftErrorCode = app.ShiftErrorCode

const (
	ShiftErrUnknownPhase     ShiftErrorCode = app.ShiftErrUnknownPhase
	ShiftErrUnscheduledPhase ShiftErrorCode = app.ShiftErrUnscheduledPhase
	ShiftErrDependencyCycle  ShiftErrorCode = app.ShiftErrDependencyCycle
	ShiftErrNoSchedule       ShiftErrorCode = app.ShiftErrNoSchedule
	ShiftErrInvalidSchedule  ShiftErrorCode = app.ShiftErrInvalidSchedule
	ShiftErrInternal         ShiftErrorCode = app.ShiftErrInternal
)

type ShiftError = app.ShiftError

type SetScheduleRequest = app.SetScheduleRequest

func NewSetScheduleRequest(projectID string, phases []domain.Phase) SetScheduleRequest {
	return app.NewSetScheduleRequest(projectID, phases)
}

type SetScheduleResponse = app.SetScheduleResponse
