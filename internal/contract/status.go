package contract

import "github.com/tomwrenn/gantry/internal/app"

type StatusRequest = app.StatusRequest

func NewStatusRequest(projectID string) StatusRequest {
	return app.NewStatusRequest(projectID)
}

type PhaseLine = app.PhaseLine

type MilestoneLine = app.MilestoneLine

type StatusResponse = app.StatusResponse

type StatusErrorCode = app.StatusErrorCode

const (
	StatusErrInternal StatusErrorCode = app.StatusErrInternal
)

type StatusError = app.StatusError
