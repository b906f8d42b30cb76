package cli

import (
	"fmt"

	"github.com/alexanderramin/grindstone/internal/cli/formatter"
	"github.com/alexanderramin/grindstone/internal/service"
	"github.com/spf13/cobra"
)

func newDomainCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "domain",
		Short: "Manage life domains",
	}

	var all bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List domains in rank order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			domains, err := app.Domains.List(cmd.Context(), all)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDomainList(domains))
			return nil
		},
	}
	list.Flags().BoolVar(&all, "all", false, "Include inactive domains")

	var color string
	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a domain ranked after the existing ones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.Domains.Create(cmd.Context(), args[0], color)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", formatter.Swatch(d.Color, "● "+d.Name))
			return nil
		},
	}
	add.Flags().StringVar(&color, "color", service.DefaultDomainColor, "Hex display color")

	deactivate := &cobra.Command{
		Use:   "deactivate NAME",
		Short: "Hide a domain from today and new tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Domains.Deactivate(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deactivated %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, add, deactivate)
	return cmd
}

func newSeedCmd(app *App) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the default domains and sample tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Domains.Seed(cmd.Context(), reset)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d domain(s) and %d task(s).\n", res.Domains, res.Tasks)
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "Delete all tasks and their history first")
	return cmd
}
