package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomwrenn/gantry/internal/cli/formatter"
	"github.com/tomwrenn/gantry/internal/contract"
	"github.com/tomwrenn/gantry/internal/domain"
)

// phaseFile is the on-disk schedule format accepted by "schedule set".
type phaseFile struct {
	Phases []phaseEntry `json:"phases"`
}

type phaseEntry struct {
	Name       string  `json:"name"`
	SortOrder  int     `json:"sort_order"`
	StartDate  *string `json:"start_date"`
	EndDate    *string `json:"end_date"`
	DependsOn  *string `json:"depends_on"`
	ResourceID *string `json:"resource_id"`
}

func newScheduleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Manage the phase schedule",
	}
	cmd.AddCommand(newScheduleSetCmd(app))
	return cmd
}

func newScheduleSetCmd(app *App) *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "set FILE",
		Short: "Replace the schedule from a JSON phase file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			phases, err := loadPhaseFile(args[0])
			if err != nil {
				return err
			}

			resp, err := app.Schedule.SetSchedule(context.Background(),
				contract.NewSetScheduleRequest(projectID, phases))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Saved schedule with %d phase(s)\n", resp.PhaseCount)
			for _, n := range resp.Notices {
				fmt.Fprintf(out, "• %s\n", n)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "default", "Project ID")
	return cmd
}

func loadPhaseFile(path string) ([]domain.Phase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schedule file: %w", err)
	}

	var file phaseFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing schedule file: %w", err)
	}

	phases := make([]domain.Phase, 0, len(file.Phases))
	for _, e := range file.Phases {
		p := domain.Phase{
			Name:       e.Name,
			SortOrder:  e.SortOrder,
			DependsOn:  e.DependsOn,
			ResourceID: e.ResourceID,
		}
		if p.StartDate, err = parseDatePtr(e.StartDate); err != nil {
			return nil, fmt.Errorf("phase %q: %w", e.Name, err)
		}
		if p.EndDate, err = parseDatePtr(e.EndDate); err != nil {
			return nil, fmt.Errorf("phase %q: %w", e.Name, err)
		}
		phases = append(phases, p)
	}
	return phases, nil
}

func parseDatePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(domain.DateLayout, *s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", *s)
	}
	return &t, nil
}

func newHistoryCmd(app *App) *cobra.Command {
	var projectID string
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the schedule change audit trail",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Schedule.History(context.Background(), projectID, limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistory(entries))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "default", "Project ID")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum entries to show (0 for all)")
	return cmd
}
