package cli

import (
	"github.com/alexanderramin/burrow/internal/domain"
	"github.com/alexanderramin/burrow/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to the services used by CLI commands.
type App struct {
	Tasks       service.TaskService
	DefaultView domain.View

	// IsInteractive reports whether stdin is a terminal; set from main.
	// When true, running burrow with no arguments opens the TUI.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "burrow" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "burrow",
		Short: "Nested task list with tags, due dates, and calendar views",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newAddCmd(app),
		newDoneCmd(app),
		newRenameCmd(app),
		newDueCmd(app),
		newRemoveCmd(app),
		newListCmd(app),
		newCalendarCmd(app),
		newTUICmd(app),
	)

	return root
}
