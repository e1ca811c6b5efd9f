package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomwrenn/gantry/internal/cli/formatter"
	"github.com/tomwrenn/gantry/internal/domain"
)

func newResourceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resource",
		Short: "Manage crews, equipment, blackouts, and allocations",
	}
	cmd.AddCommand(
		newResourceAddCmd(app),
		newResourceListCmd(app),
		newResourceActiveCmd(app, "activate", true),
		newResourceActiveCmd(app, "deactivate", false),
		newResourceBlackoutCmd(app),
		newResourceAllocateCmd(app),
	)
	return cmd
}

func newResourceAddCmd(app *App) *cobra.Command {
	var capacity float64

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Register a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := app.Resources.CreateResource(context.Background(), args[0], capacity)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created resource %s (%s)\n", r.Name, r.ID)
			return nil
		},
	}

	cmd.Flags().Float64Var(&capacity, "capacity", 1, "Capacity units per working day")
	return cmd
}

func newResourceListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List resources",
		RunE: func(cmd *cobra.Command, args []string) error {
			resources, err := app.Resources.ListResources(context.Background(), !all)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(resources) == 0 {
				fmt.Fprintln(out, "No resources registered.")
				return nil
			}
			rows := make([][]string, 0, len(resources))
			for _, r := range resources {
				state := formatter.StyleGreen.Render("active")
				if !r.Active {
					state = formatter.Dim("inactive")
				}
				rows = append(rows, []string{
					formatter.Bold(r.Name),
					fmt.Sprintf("%.1f/day", r.CapacityPerDay),
					state,
					formatter.Dim(r.ID),
				})
			}
			fmt.Fprint(out, formatter.RenderTable([]string{"NAME", "CAPACITY", "STATE", "ID"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include inactive resources")
	return cmd
}

func newResourceActiveCmd(app *App, use string, active bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ID",
		Short: use + " a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Resources.SetResourceActive(context.Background(), args[0], active); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Resource %sd\n", use)
			return nil
		},
	}
}

func newResourceBlackoutCmd(app *App) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "blackout RESOURCE_ID START END",
		Short: "Add an unavailability interval for a resource",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := time.Parse(domain.DateLayout, args[1])
			if err != nil {
				return fmt.Errorf("invalid start date %q: expected YYYY-MM-DD", args[1])
			}
			end, err := time.Parse(domain.DateLayout, args[2])
			if err != nil {
				return fmt.Errorf("invalid end date %q: expected YYYY-MM-DD", args[2])
			}

			b := &domain.Blackout{
				ResourceID: args[0],
				StartDate:  start,
				EndDate:    end,
				Reason:     reason,
			}
			if err := app.Resources.AddBlackout(context.Background(), b); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Blackout recorded")
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Why the resource is unavailable")
	return cmd
}

func newResourceAllocateCmd(app *App) *cobra.Command {
	var projectID string
	var phase string

	cmd := &cobra.Command{
		Use:   "allocate RESOURCE_ID START END",
		Short: "Book a resource against a project over a date range",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := time.Parse(domain.DateLayout, args[1])
			if err != nil {
				return fmt.Errorf("invalid start date %q: expected YYYY-MM-DD", args[1])
			}
			end, err := time.Parse(domain.DateLayout, args[2])
			if err != nil {
				return fmt.Errorf("invalid end date %q: expected YYYY-MM-DD", args[2])
			}

			a := &domain.Allocation{
				ResourceID: args[0],
				ProjectID:  projectID,
				PhaseName:  phase,
				StartDate:  start,
				EndDate:    end,
			}
			if err := app.Resources.AddAllocation(context.Background(), a); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Allocation recorded")
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "default", "Project ID")
	cmd.Flags().StringVar(&phase, "phase", "", "Phase name the booking serves")
	return cmd
}
