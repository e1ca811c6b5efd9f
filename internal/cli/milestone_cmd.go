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

func newMilestoneCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "milestones",
		Short: "Manage financial milestones anchored to the schedule",
	}
	cmd.AddCommand(
		newMilestoneListCmd(app),
		newMilestoneRuleCmd(app),
		newMilestoneRemoveRuleCmd(app),
		newMilestoneRecomputeCmd(app),
	)
	return cmd
}

func newMilestoneListCmd(app *App) *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List milestones and their due dates",
		RunE: func(cmd *cobra.Command, args []string) error {
			milestones, err := app.Milestones.ListMilestones(context.Background(), projectID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(milestones) == 0 {
				fmt.Fprintln(out, "No milestones defined.")
				return nil
			}
			rows := make([][]string, 0, len(milestones))
			for _, m := range milestones {
				due := "--"
				if m.DueDate != nil {
					due = m.DueDate.Format(domain.DateLayout)
				}
				rows = append(rows, []string{formatter.Bold(m.Key), due})
			}
			fmt.Fprint(out, formatter.RenderTable([]string{"MILESTONE", "DUE"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "default", "Project ID")
	return cmd
}

func newMilestoneRuleCmd(app *App) *cobra.Command {
	var projectID string
	var kind string
	var match string
	var offset int

	cmd := &cobra.Command{
		Use:   "rule KEY",
		Short: "Create or replace a milestone anchor rule",
		Long: `Anchor kinds:
  phase_end            due when the matched phase ends
  phase_start_minus_n  due N days before the matched phase starts
  project_final_end    due at the latest end date in the schedule
  external_event       due set manually via recompute --external`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rule := domain.AnchorRule{
				MilestoneKey: args[0],
				PhaseMatch:   match,
				Kind:         domain.AnchorKind(kind),
				OffsetDays:   offset,
			}
			if err := app.Milestones.SetRule(context.Background(), projectID, rule); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rule saved for %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "default", "Project ID")
	cmd.Flags().StringVar(&kind, "kind", string(domain.AnchorPhaseEnd), "Anchor kind")
	cmd.Flags().StringVar(&match, "phase", "", "Case-insensitive phase name fragment to anchor to")
	cmd.Flags().IntVar(&offset, "offset", 0, "Day offset for phase_start_minus_n")
	return cmd
}

func newMilestoneRemoveRuleCmd(app *App) *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "remove-rule KEY",
		Short: "Delete a milestone anchor rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Milestones.RemoveRule(context.Background(), projectID, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rule removed for %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "default", "Project ID")
	return cmd
}

func newMilestoneRecomputeCmd(app *App) *cobra.Command {
	var projectID string
	var external []string

	cmd := &cobra.Command{
		Use:   "recompute",
		Short: "Recompute milestone due dates from the current schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.NewRecomputeRequest(projectID)
			for _, pair := range external {
				key, date, err := splitExternal(pair)
				if err != nil {
					return err
				}
				if req.External == nil {
					req.External = make(map[string]time.Time)
				}
				req.External[key] = date
			}

			resp, err := app.Milestones.Recompute(context.Background(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(resp.Outcomes) == 0 {
				fmt.Fprintln(out, "No anchor rules defined.")
				return nil
			}
			rows := make([][]string, 0, len(resp.Outcomes))
			for _, o := range resp.Outcomes {
				due := "--"
				if o.DueDate != nil {
					due = o.DueDate.Format(domain.DateLayout)
				}
				note := ""
				switch {
				case o.Err != "":
					note = formatter.StyleRed.Render(o.Err)
				case o.Changed:
					note = formatter.StyleYellow.Render("changed")
				}
				rows = append(rows, []string{formatter.Bold(o.Key), due, note})
			}
			fmt.Fprint(out, formatter.RenderTable([]string{"MILESTONE", "DUE", ""}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "default", "Project ID")
	cmd.Flags().StringArrayVar(&external, "external", nil, "External event date as KEY=YYYY-MM-DD (repeatable)")
	return cmd
}

func splitExternal(pair string) (string, time.Time, error) {
	for i := 0; i < len(pair); i++ {
		if pair[i] == '=' {
			date, err := time.Parse(domain.DateLayout, pair[i+1:])
			if err != nil {
				return "", time.Time{}, fmt.Errorf("invalid external date in %q: expected KEY=YYYY-MM-DD", pair)
			}
			return pair[:i], date, nil
		}
	}
	return "", time.Time{}, fmt.Errorf("invalid external event %q: expected KEY=YYYY-MM-DD", pair)
}
