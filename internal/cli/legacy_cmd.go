package cli

import (
	"fmt"

	"github.com/alexanderramin/grindstone/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newLegacyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "legacy",
		Short: "Show streaks, badges and recent history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := app.Legacy.Overview(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLegacy(view))
			return nil
		},
	}
}

func newHistoryCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show frozen daily totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if days <= 0 {
				days = app.Config.History.RecentDays
			}
			if _, err := app.History.Backfill(ctx, app.calendar().Today()); err != nil {
				return err
			}
			recent, err := app.History.Recent(ctx, days)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistory(recent))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Number of days to show (default from config)")
	return cmd
}

func newWalletCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Manage the points wallet",
	}

	var yes bool
	reset := &cobra.Command{
		Use:   "reset",
		Short: "Set the wallet balance to zero",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				if !app.Interactive {
					return fmt.Errorf("refusing to reset the wallet without --yes")
				}
				ok, err := app.confirmer()("Reset wallet to 0?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Wallet unchanged."))
					return nil
				}
			}
			if err := app.Settings.ResetWallet(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Wallet reset to 0.")
			return nil
		},
	}
	reset.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation")

	cmd.AddCommand(reset)
	return cmd
}
