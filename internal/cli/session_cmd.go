package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/grindstone/internal/app"
	"github.com/alexanderramin/grindstone/internal/cli/formatter"
	"github.com/alexanderramin/grindstone/internal/domain"
	"github.com/spf13/cobra"
)

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Run or log a scored focus session",
	}

	cmd.AddCommand(
		newSessionStartCmd(app),
		newSessionLogCmd(app),
	)

	return cmd
}

func newSessionStartCmd(a *App) *cobra.Command {
	difficulty := difficultyFlag(domain.DefaultDifficulty)
	var resistance int
	var skipSetup bool

	cmd := &cobra.Command{
		Use:   "start TASK",
		Short: "Set up, time and debrief a focus session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.Interactive {
				return errors.New("session start needs a terminal; use `grind session log` instead")
			}
			ctx := cmd.Context()
			task, err := resolveTask(ctx, a, args[0])
			if err != nil {
				return err
			}

			setup := Setup{Difficulty: int(difficulty), Resistance: fmt.Sprint(resistance)}
			if !skipSetup {
				if err := setupForm(&setup).Run(); err != nil {
					return err
				}
			}

			res, err := a.focusRunner()(ctx, task.Title, task.PlannedDuration)
			if err != nil {
				return err
			}
			if !res.Finished {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Session aborted; nothing recorded."))
				return nil
			}

			debrief := Debrief{Minutes: res.Minutes(), Recall: domain.RecallPerfect}
			if err := a.debriefRunner()(&debrief); err != nil {
				return err
			}

			out, err := a.Sessions.Complete(ctx, task.ID, app.SessionInput{
				ActualDuration:  debrief.Minutes,
				Difficulty:      setup.Difficulty,
				ResistanceLevel: parseResistance(setup.Resistance),
				RecallAccuracy:  debrief.Recall,
				Reflection:      debrief.Reflection,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSessionOutcome(out))
			return nil
		},
	}

	cmd.Flags().Var(&difficulty, "difficulty", "Preselected difficulty: 1-3 or passive, active, systemic")
	cmd.Flags().IntVar(&resistance, "resistance", 5, "Preselected resistance (0-10)")
	cmd.Flags().BoolVar(&skipSetup, "skip-setup", false, "Use the flag values instead of the setup form")

	return cmd
}

func newSessionLogCmd(a *App) *cobra.Command {
	difficulty := difficultyFlag(domain.DefaultDifficulty)
	var minutes, resistance int
	var recall float64
	var reflection string

	cmd := &cobra.Command{
		Use:   "log TASK",
		Short: "Record a finished session without the timer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			task, err := resolveTask(ctx, a, args[0])
			if err != nil {
				return err
			}
			out, err := a.Sessions.Complete(ctx, task.ID, app.SessionInput{
				ActualDuration:  minutes,
				Difficulty:      int(difficulty),
				ResistanceLevel: resistance,
				RecallAccuracy:  recall,
				Reflection:      reflection,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSessionOutcome(out))
			return nil
		},
	}

	cmd.Flags().IntVar(&minutes, "minutes", 0, "Session length in minutes")
	cmd.Flags().Var(&difficulty, "difficulty", "1 passive, 2 active, 3 systemic (or the name)")
	cmd.Flags().IntVar(&resistance, "resistance", 5, "How hard it was to start (0-10)")
	cmd.Flags().Float64Var(&recall, "recall", domain.RecallPerfect, "Recall grade: 1.0 perfect or 0.5 hazy")
	cmd.Flags().StringVar(&reflection, "reflection", "", "What you would explain to a beginner")
	_ = cmd.MarkFlagRequired("minutes")

	return cmd
}
