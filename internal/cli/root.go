// Package cli is the grind command tree.
package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/alexanderramin/grindstone/internal/calendar"
	"github.com/alexanderramin/grindstone/internal/cli/focus"
	"github.com/alexanderramin/grindstone/internal/config"
	"github.com/alexanderramin/grindstone/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and settings CLI commands run against.
type App struct {
	Dashboard service.DashboardService
	Legacy    service.LegacyService
	History   service.HistoryService
	Settings  service.SettingsService
	Tasks     service.TaskService
	Sessions  service.SessionService
	Domains   service.DomainService

	Calendar *calendar.Calendar
	Config   config.Config
	Logger   *slog.Logger

	// Interactive enables forms and the focus timer. Off when stdin or
	// stdout is not a terminal.
	Interactive bool

	// Overridable in tests; nil uses the terminal implementations.
	RunFocus   func(ctx context.Context, title string, planned int) (focus.Result, error)
	RunDebrief func(d *Debrief) error
	Confirm    func(title string) (bool, error)
}

// NewRootCmd creates the top-level "grind" command.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "grind",
		Short:         "Gamified daily habit tracker",
		Long:          "grind tracks daily tasks across life domains, scores focus sessions and keeps a streak and badge legacy.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToday(cmd, app)
		},
	}

	root.AddCommand(
		newTodayCmd(app),
		newTaskCmd(app),
		newSessionCmd(app),
		newLockCmd(app),
		newLegacyCmd(app),
		newHistoryCmd(app),
		newWalletCmd(app),
		newDomainCmd(app),
		newSeedCmd(app),
		newServeCmd(app),
	)

	return root
}

func (a *App) focusRunner() func(ctx context.Context, title string, planned int) (focus.Result, error) {
	if a.RunFocus != nil {
		return a.RunFocus
	}
	return focus.Run
}

func (a *App) debriefRunner() func(d *Debrief) error {
	if a.RunDebrief != nil {
		return a.RunDebrief
	}
	return runDebriefForm
}

func (a *App) confirmer() func(title string) (bool, error) {
	if a.Confirm != nil {
		return a.Confirm
	}
	return confirmForm
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (a *App) calendar() *calendar.Calendar {
	if a.Calendar != nil {
		return a.Calendar
	}
	return calendar.New(nil, nil)
}
