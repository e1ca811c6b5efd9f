package cli

import (
	"github.com/spf13/cobra"

	"github.com/tomwrenn/gantry/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Schedule   service.ScheduleService
	Status     service.StatusService
	Milestones service.MilestoneService
	Capacity   service.CapacityService
	Resources  service.ResourceService

	// IsTerminal reports whether stdout is an interactive terminal.
	// Non-terminal output skips the timeline strip. Nil means terminal.
	IsTerminal func() bool
}

// NewRootCmd creates the top-level "gantry" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "gantry",
		Short: "Construction schedule and resource allocation engine",
	}

	root.AddCommand(
		newStatusCmd(app),
		newShiftCmd(app),
		newScheduleCmd(app),
		newHistoryCmd(app),
		newMilestoneCmd(app),
		newCapacityCmd(app),
		newResourceCmd(app),
	)

	return root
}
