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

func newCapacityCmd(app *App) *cobra.Command {
	var weeks int
	var from string
	var all bool

	cmd := &cobra.Command{
		Use:   "capacity",
		Short: "Show weekly resource utilization and overbooking",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.NewCapacityRequest()
			if weeks > 0 {
				req.HorizonWeeks = weeks
			}
			if from != "" {
				day, err := time.Parse(domain.DateLayout, from)
				if err != nil {
					return fmt.Errorf("invalid --from %q: expected YYYY-MM-DD", from)
				}
				req.From = &day
			}
			req.ActiveOnly = !all

			resp, err := app.Capacity.Utilization(context.Background(), req)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCapacity(resp))
			return nil
		},
	}

	cmd.Flags().IntVar(&weeks, "weeks", 0, "Horizon in weeks (default 12)")
	cmd.Flags().StringVar(&from, "from", "", "Start week (YYYY-MM-DD, defaults to this week)")
	cmd.Flags().BoolVar(&all, "all", false, "Include inactive resources")

	return cmd
}
