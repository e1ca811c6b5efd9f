package schedule

import "strings"

// progressStep maps a canonical phase name to overall project progress
// once that phase is the current one.
type progressStep struct {
	Name    string
	Percent int
}

// progressTable is the fixed, ordered mapping from canonical phase name
// to progress percentage. Lookups are case-insensitive exact matches;
// an unrecognized name maps to 0.
var progressTable = []progressStep{
	{"Planning & Permits", 5},
	{"Preconstruction", 10},
	{"Site Prep", 15},
	{"Excavation", 20},
	{"Foundation", 30},
	{"Framing", 40},
	{"Roofing", 50},
	{"Windows & Doors", 55},
	{"Rough-Ins", 60},
	{"Insulation", 65},
	{"Drywall", 70},
	{"Interior Finishes", 80},
	{"Flooring", 85},
	{"Paint", 90},
	{"Final Inspections", 95},
	{"Punch List", 98},
	{"Closeout", 100},
}

// ProgressFor returns the canonical progress percentage for a phase
// name, or 0 for an unrecognized name.
func ProgressFor(name string) int {
	for _, step := range progressTable {
		if strings.EqualFold(step.Name, name) {
			return step.Percent
		}
	}
	return 0
}
