package schedule

import (
	"time"

	"github.com/tomwrenn/gantry/internal/domain"
)

// layoutPaddingDays widens the layout window on each side so bars never
// touch the edge of the rendered area.
const layoutPaddingDays = 30

// BarSpan positions one phase inside the layout window as
// fraction-of-window offset and width, for bar rendering by a
// visualization collaborator.
type BarSpan struct {
	Name   string
	Offset float64
	Width  float64
}

// Layout computes the bounded-timeline window (earliest relevant date
// minus 30 days through latest plus 30 days) and each scheduled
// phase's position within it. Unscheduled phases are omitted; an empty
// or wholly unscheduled timeline yields no spans.
func Layout(phases []domain.Phase) []BarSpan {
	var minD, maxD *time.Time
	for i := range phases {
		for _, d := range []*time.Time{phases[i].StartDate, phases[i].EndDate} {
			if d == nil {
				continue
			}
			if minD == nil || d.Before(*minD) {
				v := *d
				minD = &v
			}
			if maxD == nil || d.After(*maxD) {
				v := *d
				maxD = &v
			}
		}
	}
	if minD == nil {
		return nil
	}

	windowStart := minD.AddDate(0, 0, -layoutPaddingDays)
	windowEnd := maxD.AddDate(0, 0, layoutPaddingDays)
	windowDays := float64(dayDelta(windowStart, windowEnd))
	if windowDays <= 0 {
		return nil
	}

	var spans []BarSpan
	for i := range phases {
		p := &phases[i]
		if !p.Scheduled() {
			continue
		}
		offset := float64(dayDelta(windowStart, *p.StartDate)) / windowDays
		width := float64(dayDelta(*p.StartDate, *p.EndDate)+1) / windowDays
		spans = append(spans, BarSpan{Name: p.Name, Offset: offset, Width: width})
	}
	return spans
}
