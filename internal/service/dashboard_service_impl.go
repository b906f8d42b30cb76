package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/grindstone/internal/app"
	"github.com/alexanderramin/grindstone/internal/calendar"
	"github.com/alexanderramin/grindstone/internal/engine"
	"github.com/alexanderramin/grindstone/internal/repository"
)

type dashboardService struct {
	history  HistoryService
	settings SettingsService
	domains  repository.DomainRepo
	tasks    repository.TaskRepo
	activity repository.ActivityRepo
	cal      *calendar.Calendar
	observer UseCaseObserver
}

func NewDashboardService(
	history HistoryService,
	settings SettingsService,
	domains repository.DomainRepo,
	tasks repository.TaskRepo,
	activity repository.ActivityRepo,
	cal *calendar.Calendar,
	observers ...UseCaseObserver,
) DashboardService {
	return &dashboardService{
		history:  history,
		settings: settings,
		domains:  domains,
		tasks:    tasks,
		activity: activity,
		cal:      cal,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Today backfills history, reconciles the lock and then reads today's
// tasks and ledger. Tasks under inactive domains are left out.
func (s *dashboardService) Today(ctx context.Context) (view *app.DashboardView, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		if view != nil {
			fields["tasks"] = len(view.Tasks)
			fields["points"] = view.TodayPoints
			fields["locked"] = view.Lock.IsLocked()
		}
		observe(ctx, s.observer, "today", startedAt, fields, &err)
	}()

	today := s.cal.Today()
	backfilled, err := s.history.Backfill(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("backfilling history: %w", err)
	}
	lock, err := s.settings.CheckLock(ctx)
	if err != nil {
		return nil, fmt.Errorf("checking lock: %w", err)
	}
	settings, err := s.settings.Load(ctx)
	if err != nil {
		return nil, err
	}

	domains, err := s.domains.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("loading domains: %w", err)
	}
	tasks, err := s.tasks.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	entries, err := s.activity.ListByDay(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("loading today's activity: %w", err)
	}

	completed := completedSet(entries)
	view = &app.DashboardView{
		Today:          today,
		Lock:           lock,
		TodayPoints:    sumPoints(entries),
		TasksCompleted: len(entries),
		WalletBalance:  settings.WalletBalance,
		Backfilled:     backfilled,
		Balance:        engine.DomainBalance(domainValues(domains), tasks, completed),
	}
	for _, d := range domains {
		for _, t := range tasks {
			if t.DomainID != d.ID {
				continue
			}
			view.Tasks = append(view.Tasks, app.TaskView{
				Task:        t,
				DomainName:  d.Name,
				DomainColor: d.Color,
				Completed:   completed[t.ID],
			})
		}
	}
	return view, nil
}
