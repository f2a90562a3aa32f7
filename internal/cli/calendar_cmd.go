package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/burrow/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCalendarCmd(app *App) *cobra.Command {
	var month string
	var week bool

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show tasks on a month or week grid by effective due date",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			now := time.Now()
			buckets := app.Tasks.Calendar(ctx)

			if week {
				fmt.Print(formatter.RenderWeek(now, buckets, now))
				return nil
			}

			year, m := now.Year(), now.Month()
			if month != "" {
				parsed, err := time.ParseInLocation("2006-01", month, time.Local)
				if err != nil {
					return fmt.Errorf("use YYYY-MM format")
				}
				year, m = parsed.Year(), parsed.Month()
			}

			fmt.Print(formatter.RenderMonth(year, m, buckets, now))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month to show (YYYY-MM, default current)")
	cmd.Flags().BoolVar(&week, "week", false, "Show the current week instead of the month")

	return cmd
}
