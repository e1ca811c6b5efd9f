package contract

import "github.com/tomwrenn/gantry/internal/app"

type CapacityRequest = app.CapacityRequest

func NewCapacityRequest() CapacityRequest {
	return app.NewCapacityRequest()
}

type CapacityResponse = app.CapacityResponse

type CapacityErrorCode = app.CapacityErrorCode

const (
	CapacityErrInvalidInterval CapacityErrorCode = app.CapacityErrInvalidInterval
	CapacityErrInternal        CapacityErrorCode = app.CapacityErrInternal
)

type CapacityError = app.CapacityError
