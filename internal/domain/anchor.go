package domain

import (
	"fmt"
	"time"
)

// AnchorRule maps a financial milestone to a date derived from the
// schedule. PhaseMatch is a case-insensitive substring matcher against
// phase names; OffsetDays applies only to phase_start_minus_n.
type AnchorRule struct {
	MilestoneKey string
	PhaseMatch   string
	Kind         AnchorKind
	OffsetDays   int
}

// Validate checks the rule shape. Match-based kinds require a matcher;
// a missing match at evaluation time leaves the milestone unset and is
// not an error.
func (r *AnchorRule) Validate() error {
	if r.MilestoneKey == "" {
		return fmt.Errorf("anchor rule: milestone key is required")
	}
	if !ValidAnchorKinds[string(r.Kind)] {
		return fmt.Errorf("anchor rule %q: unknown kind %q", r.MilestoneKey, r.Kind)
	}
	switch r.Kind {
	case AnchorPhaseEnd, AnchorPhaseStartMinus:
		if r.PhaseMatch == "" {
			return fmt.Errorf("anchor rule %q: kind %s requires a phase match", r.MilestoneKey, r.Kind)
		}
	}
	return nil
}

// Milestone is a financial milestone whose due date is recomputed from
// anchor rules. DueDate is nil while the rule has nothing to anchor to.
type Milestone struct {
	Key       string
	ProjectID string
	DueDate   *time.Time
	UpdatedAt time.Time
}
