package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/grindstone/internal/app"
	"github.com/alexanderramin/grindstone/internal/calendar"
	"github.com/alexanderramin/grindstone/internal/domain"
	"github.com/alexanderramin/grindstone/internal/engine"
	"github.com/alexanderramin/grindstone/internal/metrics"
	"github.com/alexanderramin/grindstone/internal/repository"
)

// DefaultHistoryLimit is how many recent days the legacy view shows.
const DefaultHistoryLimit = 7

type legacyService struct {
	activity     repository.ActivityRepo
	settings     repository.SettingsRepo
	history      HistoryService
	badges       []domain.BadgeDef
	historyLimit int
	cal          *calendar.Calendar
	observer     UseCaseObserver
}

func NewLegacyService(
	activity repository.ActivityRepo,
	settings repository.SettingsRepo,
	history HistoryService,
	cal *calendar.Calendar,
	historyLimit int,
	observers ...UseCaseObserver,
) LegacyService {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &legacyService{
		activity:     activity,
		settings:     settings,
		history:      history,
		badges:       engine.DefaultBadges(),
		historyLimit: historyLimit,
		cal:          cal,
		observer:     useCaseObserverOrNoop(observers),
	}
}

// Overview derives streaks and badge progress from the whole ledger. Newly
// earned badges are appended to the stored list in a single write.
func (s *legacyService) Overview(ctx context.Context) (view *app.LegacyView, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		if view != nil {
			fields["streak"] = view.Streak
			fields["newly_earned"] = len(view.NewlyEarned)
		}
		observe(ctx, s.observer, "legacy", startedAt, fields, &err)
	}()

	today := s.cal.Today()
	days, err := s.activity.ListDays(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading activity days: %w", err)
	}
	// Entries in deactivated domains keep counting toward domain badges.
	counts, err := s.activity.CountByDomain(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("counting activity by domain: %w", err)
	}
	settings, err := loadOrCreateSettings(ctx, s.settings, today)
	if err != nil {
		return nil, err
	}

	streak := engine.ComputeStreak(days, today)
	eval := engine.EvaluateBadges(s.badges, streak, counts, settings.EarnedBadges)
	settings.EarnedBadges = eval.Earned
	if eval.Changed() {
		if err = s.settings.Upsert(ctx, settings); err != nil {
			return nil, fmt.Errorf("saving earned badges: %w", err)
		}
		for _, id := range eval.NewlyEarned {
			metrics.BadgesUnlocked.WithLabelValues(id).Inc()
		}
	}

	recent, err := s.history.Recent(ctx, s.historyLimit)
	if err != nil {
		return nil, fmt.Errorf("loading recent history: %w", err)
	}

	view = &app.LegacyView{
		Today:         today,
		Streak:        streak,
		LongestStreak: engine.LongestStreak(days),
		ActiveDays:    len(days),
		NewlyEarned:   eval.NewlyEarned,
		WalletBalance: settings.WalletBalance,
		Recent:        recent,
	}
	for _, def := range s.badges {
		view.Badges = append(view.Badges, app.BadgeProgress{
			Badge:    def,
			Progress: eval.Progress[def.ID],
			Earned:   settings.HasBadge(def.ID),
		})
	}
	return view, nil
}
