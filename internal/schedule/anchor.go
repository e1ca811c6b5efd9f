package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomwrenn/gantry/internal/domain"
)

// AnchorResult is the outcome of evaluating a single anchor rule.
// DueDate is nil when the rule had nothing to anchor to, such as no
// matching phase or an absent external event; that is not an error.
// Err is set only when the rule itself is malformed, and one rule's
// failure never blocks the others.
type AnchorResult struct {
	MilestoneKey string
	DueDate      *time.Time
	Err          error
}

// RecomputeAnchors evaluates every anchor rule against the timeline.
// external supplies dates for external_event rules, keyed by milestone
// key. Idempotent: an unchanged timeline and unchanged external inputs
// yield identical results.
func RecomputeAnchors(phases []domain.Phase, rules []domain.AnchorRule, external map[string]time.Time) []AnchorResult {
	results := make([]AnchorResult, 0, len(rules))
	for _, rule := range rules {
		results = append(results, evaluateRule(phases, rule, external))
	}
	return results
}

func evaluateRule(phases []domain.Phase, rule domain.AnchorRule, external map[string]time.Time) AnchorResult {
	res := AnchorResult{MilestoneKey: rule.MilestoneKey}
	if err := rule.Validate(); err != nil {
		res.Err = err
		return res
	}

	switch rule.Kind {
	case domain.AnchorPhaseEnd:
		if p := matchPhase(phases, rule.PhaseMatch); p != nil && p.EndDate != nil {
			due := *p.EndDate
			res.DueDate = &due
		}
	case domain.AnchorPhaseStartMinus:
		if p := matchPhase(phases, rule.PhaseMatch); p != nil && p.StartDate != nil {
			due := p.StartDate.AddDate(0, 0, -rule.OffsetDays)
			res.DueDate = &due
		}
	case domain.AnchorProjectFinalEnd:
		res.DueDate = finalEnd(phases)
	case domain.AnchorExternalEvent:
		if due, ok := external[rule.MilestoneKey]; ok {
			res.DueDate = &due
		}
	default:
		res.Err = fmt.Errorf("anchor rule %q: unknown kind %q", rule.MilestoneKey, rule.Kind)
	}
	return res
}

// matchPhase returns the first phase in list order whose name
// case-insensitively contains the matcher.
func matchPhase(phases []domain.Phase, match string) *domain.Phase {
	needle := strings.ToLower(match)
	for i := range phases {
		if strings.Contains(strings.ToLower(phases[i].Name), needle) {
			return &phases[i]
		}
	}
	return nil
}

// finalEnd returns the maximum end date across all phases that have
// one, or nil for a timeline with no end dates at all.
func finalEnd(phases []domain.Phase) *time.Time {
	var max *time.Time
	for i := range phases {
		end := phases[i].EndDate
		if end == nil {
			continue
		}
		if max == nil || end.Format(domain.DateLayout) > max.Format(domain.DateLayout) {
			v := *end
			max = &v
		}
	}
	return max
}
