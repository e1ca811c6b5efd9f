package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/tomwrenn/gantry/internal/domain"
)

// Validation failures detected before any phase is touched. The whole
// operation is all-or-nothing: any of these means zero phases moved.
var (
	ErrUnknownPhase     = errors.New("unknown phase")
	ErrUnscheduledPhase = errors.New("phase missing start or end date")
	ErrDependencyCycle  = errors.New("dependency cycle")
)

// ShiftRecord describes one phase actually shifted, with its before and
// after dates, so downstream consumers can explain why a date changed.
type ShiftRecord struct {
	PhaseName   string
	DeltaDays   int
	Cascaded    bool
	BeforeStart time.Time
	BeforeEnd   time.Time
	AfterStart  time.Time
	AfterEnd    time.Time
}

// BulkShift applies a day delta to the selected phases and, when
// cascade is set, to every phase whose dependency chain transitively
// reaches a selected phase. The input slice is never mutated; the
// result is a fresh phase list plus one record per shifted phase.
//
// A zero delta is a no-op returning the input unchanged with no
// records. A selected phase that is unknown or missing either date is
// a validation error. A dependency cycle anywhere in the timeline
// aborts the entire operation.
func BulkShift(phases []domain.Phase, selected []string, deltaDays int, cascade bool) ([]domain.Phase, []ShiftRecord, error) {
	if deltaDays == 0 {
		return phases, nil, nil
	}

	arena, err := NewArena(phases)
	if err != nil {
		return nil, nil, err
	}
	if cascade {
		if err := arena.DetectCycle(); err != nil {
			return nil, nil, err
		}
	}

	direct := make(map[int]bool, len(selected))
	for _, name := range selected {
		i, ok := arena.Lookup(name)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %q", ErrUnknownPhase, name)
		}
		if !phases[i].Scheduled() {
			return nil, nil, fmt.Errorf("%w: %q", ErrUnscheduledPhase, name)
		}
		direct[i] = true
	}

	shifted := make([]domain.Phase, len(phases))
	copy(shifted, phases)

	var records []ShiftRecord
	for i := range shifted {
		cascaded := false
		if !direct[i] {
			if !cascade || !arena.DependsTransitivelyOn(i, direct) {
				continue
			}
			// Cascaded dependents without dates have nothing to move.
			if !shifted[i].Scheduled() {
				continue
			}
			cascaded = true
		}

		beforeStart, beforeEnd := *shifted[i].StartDate, *shifted[i].EndDate
		afterStart := beforeStart.AddDate(0, 0, deltaDays)
		afterEnd := beforeEnd.AddDate(0, 0, deltaDays)
		shifted[i].StartDate = &afterStart
		shifted[i].EndDate = &afterEnd

		records = append(records, ShiftRecord{
			PhaseName:   shifted[i].Name,
			DeltaDays:   deltaDays,
			Cascaded:    cascaded,
			BeforeStart: beforeStart,
			BeforeEnd:   beforeEnd,
			AfterStart:  afterStart,
			AfterEnd:    afterEnd,
		})
	}
	return shifted, records, nil
}
