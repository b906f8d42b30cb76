package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/grindstone/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Add, list, complete and remove tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskDoneCmd(app),
		newTaskRemoveCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add PHRASE...",
		Short: "Add a task from a phrase like \"Run 5k physical 3 pts\"",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			task, err := app.Tasks.AddFromPhrase(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			domains, err := app.Domains.List(ctx, true)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) to %s %s\n",
				formatter.Bold(task.Title),
				formatter.Points(task.Points),
				formatter.StylePurple.Render(domainNames(domains)[task.DomainID]),
				formatter.TruncID(task.ID),
			)
			return nil
		},
	}
}

func newTaskListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tasks, err := app.Tasks.List(ctx, !all)
			if err != nil {
				return err
			}
			domains, err := app.Domains.List(ctx, true)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskList(tasks, domainNames(domains)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include inactive tasks")
	return cmd
}

func newTaskDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done TASK",
		Short: "Toggle today's completion of a task (number, id or title)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			task, err := resolveTask(ctx, app, args[0])
			if err != nil {
				return err
			}
			out, err := app.Tasks.ToggleCompletion(ctx, task.ID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatToggle(out))
			return nil
		},
	}
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm TASK",
		Aliases: []string{"remove"},
		Short:   "Delete a task and its completion history",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			task, err := resolveTask(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Tasks.Delete(ctx, task.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", task.Title)
			return nil
		},
	}
}
