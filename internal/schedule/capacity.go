package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/tomwrenn/gantry/internal/domain"
)

// DefaultHorizonWeeks is the rolling utilization horizon.
const DefaultHorizonWeeks = 12

// workingDaysPerWeek is the size of a week bucket. Capacity is
// day-granular: Saturdays and Sundays never carry capacity, blackout,
// or allocation days.
const workingDaysPerWeek = 5

// WeeklyUtilization is one cell of the dense resource-by-week grid.
type WeeklyUtilization struct {
	ResourceID     string
	ResourceName   string
	WeekStart      time.Time
	TotalCapacity  float64
	Allocated      float64
	UtilizationPct float64
	Overbooked     bool
}

// ComputeUtilization builds the dense utilization grid for every
// resource over horizonWeeks weeks starting at the Monday of
// refWeekStart's week, plus the list of overbooked cells sorted by week
// ascending then resource name.
//
// Always recomputed from current inputs, never incrementally
// maintained. A zero-capacity week with any allocation is still
// flagged overbooked rather than hidden behind a zero percentage.
func ComputeUtilization(
	resources []domain.Resource,
	blackouts []domain.Blackout,
	allocations []domain.Allocation,
	horizonWeeks int,
	refWeekStart time.Time,
) ([]WeeklyUtilization, []WeeklyUtilization, error) {
	if horizonWeeks <= 0 {
		horizonWeeks = DefaultHorizonWeeks
	}
	for i := range blackouts {
		if blackouts[i].EndDate.Format(domain.DateLayout) < blackouts[i].StartDate.Format(domain.DateLayout) {
			return nil, nil, fmt.Errorf("blackout %s: end date precedes start date", blackouts[i].ID)
		}
	}
	for i := range allocations {
		if allocations[i].EndDate.Format(domain.DateLayout) < allocations[i].StartDate.Format(domain.DateLayout) {
			return nil, nil, fmt.Errorf("allocation %s: end date precedes start date", allocations[i].ID)
		}
	}

	blackoutsByResource := make(map[string][]domain.Blackout)
	for _, b := range blackouts {
		blackoutsByResource[b.ResourceID] = append(blackoutsByResource[b.ResourceID], b)
	}
	allocationsByResource := make(map[string][]domain.Allocation)
	for _, a := range allocations {
		allocationsByResource[a.ResourceID] = append(allocationsByResource[a.ResourceID], a)
	}

	origin := mondayOf(refWeekStart)
	grid := make([]WeeklyUtilization, 0, len(resources)*horizonWeeks)
	var overbooked []WeeklyUtilization

	for _, r := range resources {
		for w := 0; w < horizonWeeks; w++ {
			weekStart := origin.AddDate(0, 0, w*7)
			weekEnd := weekStart.AddDate(0, 0, 6)

			blackoutDays := 0
			for _, b := range blackoutsByResource[r.ID] {
				blackoutDays += workingDaysOverlap(b.StartDate, b.EndDate, weekStart, weekEnd)
			}

			total := r.CapacityPerDay*workingDaysPerWeek - float64(blackoutDays)
			if total < 0 {
				total = 0
			}

			allocated := 0.0
			for _, a := range allocationsByResource[r.ID] {
				days := workingDaysOverlap(a.StartDate, a.EndDate, weekStart, weekEnd)
				if days > workingDaysPerWeek {
					days = workingDaysPerWeek
				}
				allocated += float64(days)
			}

			cell := WeeklyUtilization{
				ResourceID:    r.ID,
				ResourceName:  r.Name,
				WeekStart:     weekStart,
				TotalCapacity: total,
				Allocated:     allocated,
				Overbooked:    allocated > total,
			}
			if total > 0 {
				cell.UtilizationPct = allocated / total * 100
			}
			grid = append(grid, cell)
			if cell.Overbooked {
				overbooked = append(overbooked, cell)
			}
		}
	}

	sort.SliceStable(overbooked, func(i, j int) bool {
		if !overbooked[i].WeekStart.Equal(overbooked[j].WeekStart) {
			return overbooked[i].WeekStart.Before(overbooked[j].WeekStart)
		}
		return overbooked[i].ResourceName < overbooked[j].ResourceName
	})

	return grid, overbooked, nil
}

// mondayOf normalizes a date to the Monday of its week at midnight UTC.
func mondayOf(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(d.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	return d.AddDate(0, 0, -offset)
}

// workingDaysOverlap counts Monday–Friday calendar days in the
// inclusive intersection of [aStart, aEnd] and [bStart, bEnd].
func workingDaysOverlap(aStart, aEnd, bStart, bEnd time.Time) int {
	start := maxDay(aStart, bStart)
	end := minDay(aEnd, bEnd)
	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			count++
		}
	}
	return count
}

func maxDay(a, b time.Time) time.Time {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	if a.After(b) {
		return a
	}
	return b
}

func minDay(a, b time.Time) time.Time {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	if a.Before(b) {
		return a
	}
	return b
}
