package cli

import (
	"fmt"

	"github.com/alexanderramin/grindstone/internal/app"
	"github.com/alexanderramin/grindstone/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newLockCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lock",
		Short: "Toggle today's lock on task edits",
		Long:  "Locking freezes the task list for today: adding and deleting tasks is refused until unlocked or the day rolls over. Completions stay open.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := a.Settings.ToggleLock(cmd.Context())
			if err != nil {
				return err
			}
			printLock(cmd, status)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show whether today is locked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := a.Settings.CheckLock(cmd.Context())
			if err != nil {
				return err
			}
			printLock(cmd, status)
			return nil
		},
	})

	return cmd
}

func printLock(cmd *cobra.Command, s app.LockStatus) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.LockPill(s.IsLocked()), formatter.Dim(s.Day.String()))
}
