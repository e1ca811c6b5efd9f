package domain

import (
	"fmt"
	"time"
)

// Snapshot is one immutable, timestamped version of a project's full
// phase list. A schedule edit always produces a new snapshot; the prior
// one is retained for diffing. Only the latest snapshot is
// authoritative for derived state.
type Snapshot struct {
	ID         string
	ProjectID  string
	CapturedAt time.Time
	Phases     []Phase
}

// Validate checks every phase and that dependency references resolve to
// another phase in the same timeline.
func (s *Snapshot) Validate() error {
	names := make(map[string]bool, len(s.Phases))
	for i := range s.Phases {
		if err := s.Phases[i].Validate(); err != nil {
			return err
		}
		names[s.Phases[i].Name] = true
	}
	for i := range s.Phases {
		dep := s.Phases[i].DependsOn
		if dep == nil {
			continue
		}
		if *dep == s.Phases[i].Name {
			return fmt.Errorf("phase %q depends on itself", s.Phases[i].Name)
		}
		if !names[*dep] {
			return fmt.Errorf("phase %q depends on unknown phase %q", s.Phases[i].Name, *dep)
		}
	}
	return nil
}
