package formatter

import (
	"fmt"
	"strings"

	"github.com/tomwrenn/gantry/internal/contract"
	"github.com/tomwrenn/gantry/internal/schedule"
)

// FormatCapacity formats the resource-by-week utilization grid, one
// table section per resource, with an overbooking summary on top.
func FormatCapacity(resp *contract.CapacityResponse) string {
	var b strings.Builder

	if len(resp.Grid) == 0 {
		return Dim("No resources to report.") + "\n"
	}

	if len(resp.Overbooked) > 0 {
		b.WriteString(StyleRed.Render(fmt.Sprintf("%d overbooked week(s)", len(resp.Overbooked))) + "\n\n")
	} else {
		b.WriteString(StyleGreen.Render("No overbooking in the horizon") + "\n\n")
	}

	byResource := make(map[string][]schedule.WeeklyUtilization)
	var order []string
	for _, cell := range resp.Grid {
		if _, seen := byResource[cell.ResourceID]; !seen {
			order = append(order, cell.ResourceID)
		}
		byResource[cell.ResourceID] = append(byResource[cell.ResourceID], cell)
	}

	for _, id := range order {
		cells := byResource[id]
		// Resource names are user data; render them as entered.
		b.WriteString(Bold(cells[0].ResourceName))
		b.WriteString("\n")

		headers := []string{"WEEK OF", "CAPACITY", "ALLOCATED", "UTILIZATION", ""}
		rows := make([][]string, 0, len(cells))
		for _, c := range cells {
			rows = append(rows, []string{
				c.WeekStart.Format("2006-01-02"),
				fmt.Sprintf("%.1f", c.TotalCapacity),
				fmt.Sprintf("%.1f", c.Allocated),
				RenderProgress(c.UtilizationPct/100, 8),
				BookingIndicator(c.Overbooked),
			})
		}
		b.WriteString(RenderTable(headers, rows))
		b.WriteString("\n")
	}

	return b.String()
}
