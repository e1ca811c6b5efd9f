package formatter

import (
	"fmt"
	"strings"

	"github.com/tomwrenn/gantry/internal/schedule"
)

const (
	timelineWidth   = 60
	timelineBar     = "█"
	timelineTrack   = "·"
	timelineNamePad = 18
)

// FormatTimeline renders bar spans as a left-aligned Gantt strip, one
// row per phase. Each bar occupies its fraction of the shared window.
func FormatTimeline(spans []schedule.BarSpan) string {
	var b strings.Builder
	for i, span := range spans {
		offset := int(span.Offset * timelineWidth)
		width := int(span.Width * timelineWidth)
		if width < 1 {
			width = 1
		}
		if offset > timelineWidth-1 {
			offset = timelineWidth - 1
		}
		if offset+width > timelineWidth {
			width = timelineWidth - offset
		}

		name := span.Name
		if len(name) > timelineNamePad {
			name = name[:timelineNamePad-1] + "…"
		}

		style := StyleBlue
		if i%2 == 1 {
			style = StylePurple
		}
		row := Dim(strings.Repeat(timelineTrack, offset)) +
			style.Render(strings.Repeat(timelineBar, width)) +
			Dim(strings.Repeat(timelineTrack, timelineWidth-offset-width))
		b.WriteString(fmt.Sprintf("%-*s %s\n", timelineNamePad, name, row))
	}
	return b.String()
}
