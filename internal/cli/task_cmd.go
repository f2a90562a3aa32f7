package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/burrow/internal/cli/formatter"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// dateFlag is a --due flag value that distinguishes "not given" from
// "given", so commands can tell a clear from an untouched flag.
type dateFlag struct {
	set bool
	t   time.Time
}

var _ pflag.Value = (*dateFlag)(nil)

func (f *dateFlag) String() string {
	if !f.set {
		return ""
	}
	return f.t.Format("2006-01-02")
}

func (f *dateFlag) Set(s string) error {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	f.set = true
	f.t = t
	return nil
}

func (f *dateFlag) Type() string { return "date" }

func newAddCmd(app *App) *cobra.Command {
	var due dateFlag
	var under string

	cmd := &cobra.Command{
		Use:   "add [title...]",
		Short: "Create a task; #tags in the title become tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			title := strings.Join(args, " ")
			if title == "" {
				var err error
				title, err = promptAddForm(&due)
				if err != nil {
					return err
				}
			}

			var parentID *string
			if under != "" {
				parent, err := app.Tasks.Resolve(ctx, under)
				if err != nil {
					return err
				}
				parentID = &parent.ID
			}

			var dueAt *time.Time
			if due.set {
				dueAt = &due.t
			}

			task, err := app.Tasks.Add(ctx, title, dueAt, parentID)
			if err != nil {
				return err
			}

			fmt.Printf("Created %s %s\n", formatter.TruncID(task.ID), task.Title)
			if len(task.Tags) > 0 {
				fmt.Printf("  %s\n", formatter.TagBadges(task.Tags))
			}
			return nil
		},
	}

	cmd.Flags().Var(&due, "due", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&under, "under", "", "Parent task id or id prefix")

	return cmd
}

func newDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done ID",
		Short: "Toggle a task's completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			task, err := app.Tasks.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			toggled, err := app.Tasks.Toggle(ctx, task.ID)
			if err != nil {
				return err
			}
			if toggled.Completed {
				fmt.Printf("Done: %s\n", toggled.Title)
			} else {
				fmt.Printf("Reopened: %s\n", toggled.Title)
			}
			return nil
		},
	}
}

func newRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename ID title...",
		Short: "Rename a task; an empty new title leaves it unchanged",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			task, err := app.Tasks.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			renamed, err := app.Tasks.Rename(ctx, task.ID, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			fmt.Printf("Renamed to %s\n", renamed.Title)
			return nil
		},
	}
}

func newDueCmd(app *App) *cobra.Command {
	var due dateFlag
	var clear bool

	cmd := &cobra.Command{
		Use:   "due ID",
		Short: "Set or clear a task's due date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			task, err := app.Tasks.Resolve(ctx, args[0])
			if err != nil {
				return err
			}

			switch {
			case clear:
				if _, err := app.Tasks.SetDue(ctx, task.ID, nil); err != nil {
					return err
				}
				fmt.Printf("Cleared due date of %s\n", task.Title)
			case due.set:
				if _, err := app.Tasks.SetDue(ctx, task.ID, &due.t); err != nil {
					return err
				}
				fmt.Printf("Due %s: %s\n", due.t.Format("Jan 2, 2006"), task.Title)
			default:
				return fmt.Errorf("pass --due or --clear")
			}
			return nil
		},
	}

	cmd.Flags().Var(&due, "due", "Due date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&clear, "clear", false, "Remove the due date")

	return cmd
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID",
		Short: "Delete a task and its whole subtree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			task, err := app.Tasks.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Tasks.Delete(ctx, task.ID); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", task.Title)
			return nil
		},
	}
}
