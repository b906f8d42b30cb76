package cli

import (
	"fmt"

	"github.com/alexanderramin/grindstone/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTodayCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's tasks, lock state and balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToday(cmd, app)
		},
	}
}

func runToday(cmd *cobra.Command, app *App) error {
	view, err := app.Dashboard.Today(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDashboard(view))
	return nil
}
