package schedule

import (
	"time"

	"github.com/tomwrenn/gantry/internal/domain"
)

// Fallbacks reported when the timeline itself cannot supply a current
// phase. These are business conventions, preserved as explicit rules.
const (
	// SyntheticUpcoming is reported when every scheduled phase is still
	// in the future; progress is floored at upcomingProgressFloor.
	SyntheticUpcoming     = "Preconstruction"
	upcomingProgressFloor = 10

	// FallbackEmpty is reported for an empty or wholly unscheduled
	// timeline.
	FallbackEmpty = "Planning & Permits"
)

// PhaseState is the derived classification of a single phase.
type PhaseState struct {
	Name      string
	SortOrder int
	Status    domain.PhaseStatus
	Progress  int
}

// Resolution is the derived view of a whole timeline for one calendar
// day: the single current phase, the project progress percentage, and
// the per-phase classification in input order.
type Resolution struct {
	CurrentPhase string
	ProgressPct  int
	Phases       []PhaseState
}

// Resolve derives each phase's status and the project's current phase
// and progress for the given day. Pure and deterministic: identical
// input yields identical output, so results are cacheable per
// (project, calendar day) and safe for concurrent batch dashboards.
//
// Selection policy:
//  1. Exactly one active phase: it is current.
//  2. Several active: the first active phase with the largest
//     sort order encountered, input order otherwise preserved.
//  3. None active but some completed: the completed phase with the
//     latest end date, ties broken by later input position.
//  4. Only upcoming phases: the synthetic SyntheticUpcoming phase at
//     the 10% floor.
//  5. Nothing classified: FallbackEmpty at 0%.
func Resolve(phases []domain.Phase, today time.Time) Resolution {
	day := today.Format(domain.DateLayout)

	states := make([]PhaseState, len(phases))
	activeIdx := -1
	completedIdx := -1
	anyUpcoming := false

	for i := range phases {
		p := &phases[i]
		st := PhaseState{
			Name:      p.Name,
			SortOrder: p.SortOrder,
			Status:    domain.PhaseUnscheduled,
			Progress:  ProgressFor(p.Name),
		}
		if p.Scheduled() {
			start := p.StartDate.Format(domain.DateLayout)
			end := p.EndDate.Format(domain.DateLayout)
			switch {
			case day > end:
				st.Status = domain.PhaseCompleted
			case day < start:
				st.Status = domain.PhaseUpcoming
			default:
				st.Status = domain.PhaseActive
			}
		}
		states[i] = st

		switch st.Status {
		case domain.PhaseActive:
			if activeIdx < 0 || p.SortOrder > phases[activeIdx].SortOrder {
				activeIdx = i
			}
		case domain.PhaseCompleted:
			if completedIdx < 0 ||
				p.EndDate.Format(domain.DateLayout) >= phases[completedIdx].EndDate.Format(domain.DateLayout) {
				completedIdx = i
			}
		case domain.PhaseUpcoming:
			anyUpcoming = true
		}
	}

	res := Resolution{Phases: states}
	switch {
	case activeIdx >= 0:
		res.CurrentPhase = phases[activeIdx].Name
		res.ProgressPct = ProgressFor(res.CurrentPhase)
	case completedIdx >= 0:
		res.CurrentPhase = phases[completedIdx].Name
		res.ProgressPct = ProgressFor(res.CurrentPhase)
	case anyUpcoming:
		res.CurrentPhase = SyntheticUpcoming
		res.ProgressPct = upcomingProgressFloor
		if p := ProgressFor(SyntheticUpcoming); p > res.ProgressPct {
			res.ProgressPct = p
		}
	default:
		res.CurrentPhase = FallbackEmpty
		res.ProgressPct = 0
	}
	return res
}
