package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tomwrenn/gantry/internal/cli/formatter"
	"github.com/tomwrenn/gantry/internal/contract"
)

func newShiftCmd(app *App) *cobra.Command {
	var projectID string
	var cascade bool
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "shift DAYS PHASE...",
		Short: "Move phases by a number of days, optionally cascading to dependents",
		Long: `Move the named phases by DAYS days (negative moves earlier).
With --cascade every phase that transitively depends on a shifted phase
moves by the same amount. The edit is all-or-nothing.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid day count %q", args[0])
			}

			req := contract.NewShiftRequest(projectID, args[1:], delta)
			req.Cascade = cascade
			req.DryRun = dryRun

			resp, err := app.Schedule.Shift(context.Background(), req)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatShift(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "default", "Project ID")
	cmd.Flags().BoolVar(&cascade, "cascade", false, "Also shift phases that depend on the selected ones")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview the shift without saving")

	return cmd
}
