package domain

import "time"

// AuditEntry records one phase touched by a bulk shift: the delta, the
// before/after dates, whether the phase was reached through a cascade,
// and who asked for it. Entries are append-only and never mutated.
type AuditEntry struct {
	ID          string
	ProjectID   string
	PhaseName   string
	DeltaDays   int
	Cascade     bool // the invocation requested cascading
	Cascaded    bool // this phase was shifted via the dependency graph
	BeforeStart time.Time
	BeforeEnd   time.Time
	AfterStart  time.Time
	AfterEnd    time.Time
	Actor       string
	CreatedAt   time.Time
}
