package domain

type AnchorKind string

const (
	AnchorPhaseEnd        AnchorKind = "phase_end"
	AnchorPhaseStartMinus AnchorKind = "phase_start_minus_n"
	AnchorProjectFinalEnd AnchorKind = "project_final_end"
	AnchorExternalEvent   AnchorKind = "external_event"
)

// ValidAnchorKinds is the canonical set of accepted anchor kind strings.
var ValidAnchorKinds = map[string]bool{
	"phase_end": true, "phase_start_minus_n": true,
	"project_final_end": true, "external_event": true,
}

type PhaseStatus string

const (
	PhaseUpcoming  PhaseStatus = "upcoming"
	PhaseActive    PhaseStatus = "active"
	PhaseCompleted PhaseStatus = "completed"
	// PhaseUnscheduled marks a phase missing a start or end date; such
	// phases are excluded from active/completed/upcoming classification.
	PhaseUnscheduled PhaseStatus = "unscheduled"
)
