package schedule

import (
	"fmt"
	"time"

	"github.com/tomwrenn/gantry/internal/domain"
)

// FallbackNotice is emitted when there is no previous snapshot or the
// diff finds nothing to say, so a change event is never silently
// dropped.
const FallbackNotice = "schedule was updated"

// Diff compares two phase lists matched by name and returns
// human-readable change notices. A duration change wins over a move;
// a phase with neither emits nothing. Always returns at least one
// notice.
func Diff(previous, current []domain.Phase) []string {
	if previous == nil {
		return []string{FallbackNotice}
	}

	prevByName := make(map[string]*domain.Phase, len(previous))
	for i := range previous {
		prevByName[previous[i].Name] = &previous[i]
	}

	var notices []string
	seen := make(map[string]bool, len(current))
	for i := range current {
		cur := &current[i]
		seen[cur.Name] = true
		prev, ok := prevByName[cur.Name]
		if !ok {
			notices = append(notices, fmt.Sprintf("%s was added to the schedule", cur.Name))
			continue
		}
		if n := describePhaseChange(prev, cur); n != "" {
			notices = append(notices, n)
		}
	}
	for i := range previous {
		if !seen[previous[i].Name] {
			notices = append(notices, fmt.Sprintf("%s was removed from the schedule", previous[i].Name))
		}
	}

	if len(notices) == 0 {
		return []string{FallbackNotice}
	}
	return notices
}

func describePhaseChange(prev, cur *domain.Phase) string {
	prevDur, prevOK := prev.DurationDays()
	curDur, curOK := cur.DurationDays()
	if !prevOK || !curOK {
		return ""
	}

	if curDur != prevDur {
		delta := curDur - prevDur
		if delta > 0 {
			return fmt.Sprintf("%s was extended by %d day(s)", cur.Name, delta)
		}
		return fmt.Sprintf("%s was shortened by %d day(s)", cur.Name, -delta)
	}

	prevStart := prev.StartDate.Format(domain.DateLayout)
	curStart := cur.StartDate.Format(domain.DateLayout)
	if prevStart != curStart {
		delta := dayDelta(*prev.StartDate, *cur.StartDate)
		if delta > 0 {
			return fmt.Sprintf("%s was moved later by %d day(s)", cur.Name, delta)
		}
		return fmt.Sprintf("%s was moved earlier by %d day(s)", cur.Name, -delta)
	}
	return ""
}

// dayDelta counts calendar days from a to b.
func dayDelta(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad).Hours() / 24)
}
