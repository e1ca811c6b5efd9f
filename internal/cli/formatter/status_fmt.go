package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomwrenn/gantry/internal/contract"
	"github.com/tomwrenn/gantry/internal/domain"
)

const statusProgressBarWidth = 10

// FormatStatus formats a StatusResponse into a styled CLI dashboard string.
func FormatStatus(resp *contract.StatusResponse) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s %s  %s\n\n",
		Bold("Current phase:"),
		StyleGreen.Render(resp.CurrentPhase),
		RenderProgress(float64(resp.ProgressPct)/100, statusProgressBarWidth)))

	if len(resp.Phases) > 0 {
		headers := []string{"PHASE", "STATUS", "START", "END", "PROGRESS"}
		rows := make([][]string, 0, len(resp.Phases))
		for _, p := range resp.Phases {
			rows = append(rows, []string{
				Bold(p.Name),
				PhaseStatusPill(p.Status),
				dateCell(p.StartDate),
				dateCell(p.EndDate),
				fmt.Sprintf("%d%%", p.Progress),
			})
		}
		b.WriteString(RenderTable(headers, rows))
	}

	if len(resp.Milestones) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Milestones"))
		b.WriteString("\n")
		rows := make([][]string, 0, len(resp.Milestones))
		for _, m := range resp.Milestones {
			rows = append(rows, []string{Bold(m.Key), dateCell(m.DueDate)})
		}
		b.WriteString(RenderTable([]string{"MILESTONE", "DUE"}, rows))
	}

	if len(resp.Timeline) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Timeline"))
		b.WriteString("\n")
		b.WriteString(FormatTimeline(resp.Timeline))
	}

	return b.String()
}

func dateCell(t *time.Time) string {
	if t == nil {
		return Dim("--")
	}
	return StyleFg.Render(t.Format(domain.DateLayout))
}
