package domain

import (
	"fmt"
	"time"
)

// DateLayout is the canonical day-granular date format. Schedule dates
// are compared as formatted calendar strings, never as instants, so a
// timezone can never move a phase across a day boundary.
const DateLayout = "2006-01-02"

// Phase is one named, date-ranged segment of a project's construction
// schedule. Name acts as a semi-stable key across snapshots; DependsOn
// references another phase in the same timeline by name.
type Phase struct {
	Name       string
	SortOrder  int
	StartDate  *time.Time
	EndDate    *time.Time
	DependsOn  *string
	ResourceID *string
}

// Scheduled reports whether both dates are set.
func (p *Phase) Scheduled() bool {
	return p.StartDate != nil && p.EndDate != nil
}

// DurationDays returns the day-count duration (end minus start) for a
// scheduled phase, and false for an unscheduled one.
func (p *Phase) DurationDays() (int, bool) {
	if !p.Scheduled() {
		return 0, false
	}
	return daysBetween(*p.StartDate, *p.EndDate), true
}

// Validate checks the date-range invariant: when both dates are set,
// end must not precede start. Violations are data-integrity errors
// surfaced to the caller, never coerced.
func (p *Phase) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("phase name is required")
	}
	if p.Scheduled() && p.EndDate.Format(DateLayout) < p.StartDate.Format(DateLayout) {
		return fmt.Errorf("phase %q: end date %s precedes start date %s",
			p.Name, p.EndDate.Format(DateLayout), p.StartDate.Format(DateLayout))
	}
	return nil
}

// daysBetween counts calendar days from a to b on day granularity.
func daysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad).Hours() / 24)
}
