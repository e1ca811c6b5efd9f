package domain

import "time"

// Resource is a crew or piece of equipment with a daily capacity in
// abstract units. Resources are referenced, not owned, by phases.
type Resource struct {
	ID             string
	Name           string
	CapacityPerDay float64
	Active         bool
	CreatedAt      time.Time
}

// Blackout is a capacity-reducing unavailability interval for a
// resource (vacation, maintenance, another contract).
type Blackout struct {
	ID         string
	ResourceID string
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
}

// Allocation books a resource against a project's phase over a date
// range. Allocations are day-granular; partial-day bookings count each
// overlapping calendar day once.
type Allocation struct {
	ID         string
	ResourceID string
	ProjectID  string
	PhaseName  string
	StartDate  time.Time
	EndDate    time.Time
}
