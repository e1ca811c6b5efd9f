package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomwrenn/gantry/internal/cli/formatter"
	"github.com/tomwrenn/gantry/internal/contract"
	"github.com/tomwrenn/gantry/internal/domain"
)

func newStatusCmd(app *App) *cobra.Command {
	var projectID string
	var asOf string
	var noTimeline bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current phase, progress, and timeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.NewStatusRequest(projectID)
			if asOf != "" {
				day, err := time.Parse(domain.DateLayout, asOf)
				if err != nil {
					return fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", asOf)
				}
				req.Now = &day
			}
			req.IncludeTimeline = !noTimeline && (app.IsTerminal == nil || app.IsTerminal())

			resp, err := app.Status.GetStatus(context.Background(), req)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStatus(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "default", "Project ID")
	cmd.Flags().StringVar(&asOf, "date", "", "Evaluate status as of this date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&noTimeline, "no-timeline", false, "Skip the timeline strip")

	return cmd
}
