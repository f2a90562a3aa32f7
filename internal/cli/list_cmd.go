package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/burrow/internal/cli/formatter"
	"github.com/alexanderramin/burrow/internal/domain"
	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	var search string
	var tree bool

	cmd := &cobra.Command{
		Use:   "list [view]",
		Short: "List tasks by view (inbox|today|upcoming|completed), or the full tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			now := time.Now()

			if tree || len(args) == 0 && app.DefaultView == "" {
				return printTree(ctx, app, now)
			}

			view := app.DefaultView
			if len(args) == 1 {
				parsed, err := domain.ParseView(args[0])
				if err != nil {
					return err
				}
				view = parsed
			}
			if view == domain.ViewCalendar {
				return fmt.Errorf("use \"burrow calendar\" for the calendar view")
			}

			tasks := app.Tasks.ListView(ctx, view, search, now)
			all := taskSnapshot(ctx, app)

			fmt.Println(formatter.Header(string(view)))
			fmt.Print(formatter.RenderFlatList(tasks, all, now))
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Filter by title or tag substring")
	cmd.Flags().BoolVar(&tree, "tree", false, "Show the full task tree instead of a view")

	return cmd
}

func printTree(ctx context.Context, app *App, now time.Time) error {
	roots := app.Tasks.Tree(ctx)
	all := taskSnapshot(ctx, app)
	rows := formatter.RowsFromTree(roots, all)
	fmt.Print(formatter.RenderTaskTree(rows, now))
	return nil
}

// taskSnapshot rebuilds the flat collection from the derived tree so
// breadcrumb and inheritance lookups see the same state the listing
// was computed from.
func taskSnapshot(ctx context.Context, app *App) []domain.Task {
	flat := domain.Flatten(app.Tasks.Tree(ctx))
	tasks := make([]domain.Task, len(flat))
	for i, n := range flat {
		tasks[i] = n.Task
	}
	return tasks
}
