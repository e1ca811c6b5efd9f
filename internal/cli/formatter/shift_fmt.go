package formatter

import (
	"fmt"
	"strings"

	"github.com/tomwrenn/gantry/internal/contract"
	"github.com/tomwrenn/gantry/internal/domain"
)

// FormatShift formats a ShiftResponse: what moved, the change notices,
// and any milestone due dates that followed the schedule.
func FormatShift(resp *contract.ShiftResponse) string {
	var b strings.Builder

	if resp.DryRun {
		b.WriteString(StyleYellow.Render("DRY RUN — nothing was saved") + "\n\n")
	}

	if len(resp.Shifts) == 0 {
		b.WriteString(Dim("Nothing moved.") + "\n")
		return b.String()
	}

	headers := []string{"PHASE", "BEFORE", "AFTER", ""}
	rows := make([][]string, 0, len(resp.Shifts))
	for _, sh := range resp.Shifts {
		tag := ""
		if sh.Cascaded {
			tag = StylePurple.Render("cascaded")
		}
		rows = append(rows, []string{
			Bold(sh.PhaseName),
			fmt.Sprintf("%s → %s", sh.BeforeStart.Format(domain.DateLayout), sh.BeforeEnd.Format(domain.DateLayout)),
			fmt.Sprintf("%s → %s", sh.AfterStart.Format(domain.DateLayout), sh.AfterEnd.Format(domain.DateLayout)),
			tag,
		})
	}
	b.WriteString(RenderTable(headers, rows))

	if len(resp.Notices) > 0 {
		b.WriteString("\n")
		for _, n := range resp.Notices {
			b.WriteString(StyleBlue.Render("• ") + n + "\n")
		}
	}

	if len(resp.Milestones) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Milestones moved"))
		b.WriteString("\n")
		rows := make([][]string, 0, len(resp.Milestones))
		for _, m := range resp.Milestones {
			rows = append(rows, []string{Bold(m.Key), dateCell(m.Before), dateCell(m.After)})
		}
		b.WriteString(RenderTable([]string{"MILESTONE", "WAS", "NOW"}, rows))
	}

	return b.String()
}

// FormatHistory formats audit entries newest first.
func FormatHistory(entries []domain.AuditEntry) string {
	if len(entries) == 0 {
		return Dim("No schedule changes recorded.") + "\n"
	}

	headers := []string{"WHEN", "PHASE", "DELTA", "AFTER", "BY", ""}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		delta := fmt.Sprintf("%+dd", e.DeltaDays)
		if e.DeltaDays > 0 {
			delta = StyleYellow.Render(delta)
		} else {
			delta = StyleGreen.Render(delta)
		}
		tag := ""
		if e.Cascaded {
			tag = StylePurple.Render("cascaded")
		}
		rows = append(rows, []string{
			Dim(e.CreatedAt.Format("2006-01-02 15:04")),
			Bold(e.PhaseName),
			delta,
			fmt.Sprintf("%s → %s", e.AfterStart.Format(domain.DateLayout), e.AfterEnd.Format(domain.DateLayout)),
			e.Actor,
			tag,
		})
	}
	return RenderTable(headers, rows)
}
