package app

import (
	"time"

	"github.com/tomwrenn/gantry/internal/schedule"
)

type CapacityRequest struct {
	// From anchors the horizon; defaults to the current week's Monday.
	From         *time.Time
	HorizonWeeks int
	ActiveOnly   bool
}

func NewCapacityRequest() CapacityRequest {
	return CapacityRequest{
		HorizonWeeks: schedule.DefaultHorizonWeeks,
		ActiveOnly:   true,
	}
}

type CapacityResponse struct {
	GeneratedAt time.Time
	WeekStart   time.Time
	Weeks       int
	Grid        []schedule.WeeklyUtilization
	Overbooked  []schedule.WeeklyUtilization
}

type CapacityErrorCode string

const (
	CapacityErrInvalidInterval CapacityErrorCode = "INVALID_INTERVAL"
	CapacityErrInternal        CapacityErrorCode = "INTERNAL_ERROR"
)

type CapacityError struct {
	Code    CapacityErrorCode
	Message string
}

func (e *CapacityError) Error() string {
	return string(e.Code) + ": " + e.Message
}
