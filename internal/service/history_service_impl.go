package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/grindstone/internal/calendar"
	"github.com/alexanderramin/grindstone/internal/domain"
	"github.com/alexanderramin/grindstone/internal/metrics"
	"github.com/alexanderramin/grindstone/internal/repository"
)

// DefaultBackfillWindow is how far back backfill reaches when no history
// exists yet.
const DefaultBackfillWindow = 30

type historyService struct {
	history  repository.HistoryRepo
	activity repository.ActivityRepo
	window   int
	now      func() time.Time
	observer UseCaseObserver
}

func NewHistoryService(
	history repository.HistoryRepo,
	activity repository.ActivityRepo,
	window int,
	observers ...UseCaseObserver,
) HistoryService {
	if window <= 0 {
		window = DefaultBackfillWindow
	}
	return &historyService{
		history:  history,
		activity: activity,
		window:   window,
		now:      func() time.Time { return time.Now().UTC() },
		observer: useCaseObserverOrNoop(observers),
	}
}

// Backfill walks from the day after the latest record (or window days
// before today when there is none) up to, but excluding, today. Every day
// is written on its own with insert-or-ignore, so an interrupted or
// concurrent run never duplicates a record and a rerun resumes.
func (s *historyService) Backfill(ctx context.Context, today calendar.Day) (written int, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"today": today.String()}
	defer func() {
		fields["written"] = written
		observe(ctx, s.observer, "backfill-history", startedAt, fields, &err)
	}()

	start := today.AddDays(-s.window)
	latest, err := s.history.Latest(ctx)
	switch {
	case err == nil:
		start = latest.Day.AddDays(1)
	case errors.Is(err, repository.ErrNotFound):
		err = nil
	default:
		return 0, fmt.Errorf("finding latest history: %w", err)
	}
	fields["from"] = start.String()

	for day := start; day.Before(today); day = day.AddDays(1) {
		if err = ctx.Err(); err != nil {
			return written, err
		}
		var created bool
		created, err = s.freezeDay(ctx, day)
		if err != nil {
			return written, err
		}
		if created {
			written++
			metrics.HistoryBackfilled.Inc()
		}
	}
	return written, nil
}

func (s *historyService) freezeDay(ctx context.Context, day calendar.Day) (bool, error) {
	exists, err := s.history.Exists(ctx, day)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	points, err := s.activity.SumPoints(ctx, day)
	if err != nil {
		return false, fmt.Errorf("summing points for %s: %w", day, err)
	}
	count, err := s.activity.CountEntries(ctx, day)
	if err != nil {
		return false, fmt.Errorf("counting entries for %s: %w", day, err)
	}

	created, err := s.history.CreateIfAbsent(ctx, &domain.DailyHistory{
		Day:            day,
		TotalPoints:    points,
		TasksCompleted: count,
		CreatedAt:      s.now(),
	})
	if err != nil {
		return false, fmt.Errorf("freezing %s: %w", day, err)
	}
	return created, nil
}

func (s *historyService) Recent(ctx context.Context, limit int) ([]*domain.DailyHistory, error) {
	if limit <= 0 {
		limit = 7
	}
	return s.history.ListRecent(ctx, limit)
}
