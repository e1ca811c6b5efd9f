package schedule

import (
	"fmt"

	"github.com/tomwrenn/gantry/internal/domain"
)

// Arena is an indexed view of a timeline with name-based dependency
// references resolved once to integer indices. All graph traversal
// works on indices; name matching is confined to the anchor-rule
// boundary where rule configuration is inherently name-based.
type Arena struct {
	Phases []domain.Phase
	// deps[i] is the index of the phase that Phases[i] depends on,
	// or -1 for none.
	deps  []int
	index map[string]int
}

// NewArena builds an arena from a phase list, resolving dependency
// names to indices. Unknown or self references are rejected.
func NewArena(phases []domain.Phase) (*Arena, error) {
	a := &Arena{
		Phases: phases,
		deps:   make([]int, len(phases)),
		index:  make(map[string]int, len(phases)),
	}
	for i := range phases {
		if _, dup := a.index[phases[i].Name]; dup {
			return nil, fmt.Errorf("duplicate phase name %q", phases[i].Name)
		}
		a.index[phases[i].Name] = i
	}
	for i := range phases {
		a.deps[i] = -1
		ref := phases[i].DependsOn
		if ref == nil {
			continue
		}
		j, ok := a.index[*ref]
		if !ok {
			return nil, fmt.Errorf("phase %q depends on unknown phase %q", phases[i].Name, *ref)
		}
		if j == i {
			return nil, fmt.Errorf("phase %q depends on itself", phases[i].Name)
		}
		a.deps[i] = j
	}
	return a, nil
}

// Lookup returns the index of the named phase.
func (a *Arena) Lookup(name string) (int, bool) {
	i, ok := a.index[name]
	return i, ok
}

// DetectCycle walks every dependency chain with in-progress marking and
// returns an error naming a phase on the first cycle found. Run before
// any cascade traversal so a cycle is a hard validation error, never an
// infinite walk at runtime.
func (a *Arena) DetectCycle() error {
	const (
		white = 0 // unvisited
		grey  = 1 // on the current chain
		black = 2 // fully explored
	)
	marks := make([]int, len(a.Phases))
	for start := range a.Phases {
		if marks[start] != white {
			continue
		}
		for i := start; i >= 0; i = a.deps[i] {
			if marks[i] == grey {
				return fmt.Errorf("%w involving phase %q", ErrDependencyCycle, a.Phases[i].Name)
			}
			if marks[i] == black {
				break
			}
			marks[i] = grey
		}
		for i := start; i >= 0 && marks[i] == grey; i = a.deps[i] {
			marks[i] = black
		}
	}
	return nil
}

// DependsTransitivelyOn reports whether phase i's dependency chain
// reaches any index in targets. Assumes DetectCycle has passed.
func (a *Arena) DependsTransitivelyOn(i int, targets map[int]bool) bool {
	for j := a.deps[i]; j >= 0; j = a.deps[j] {
		if targets[j] {
			return true
		}
	}
	return false
}
