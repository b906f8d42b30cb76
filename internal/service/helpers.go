package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/grindstone/internal/calendar"
	"github.com/alexanderramin/grindstone/internal/domain"
	"github.com/alexanderramin/grindstone/internal/repository"
)

// loadOrCreateSettings returns the settings singleton, creating it on first
// access with the lock stamped today.
func loadOrCreateSettings(ctx context.Context, repo repository.SettingsRepo, today calendar.Day) (*domain.GameSettings, error) {
	s, err := repo.Get(ctx)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("loading game settings: %w", err)
	}
	s = domain.NewGameSettings(today)
	if err := repo.Upsert(ctx, s); err != nil {
		return nil, fmt.Errorf("creating game settings: %w", err)
	}
	return s, nil
}

// domainValues copies repository results into the value slice the engine
// works on.
func domainValues(ds []*domain.Domain) []domain.Domain {
	out := make([]domain.Domain, 0, len(ds))
	for _, d := range ds {
		out = append(out, *d)
	}
	return out
}

// completedSet indexes the tasks that have at least one entry in entries.
func completedSet(entries []*domain.ActivityEntry) map[string]bool {
	set := make(map[string]bool, len(entries))
	for _, e := range entries {
		set[e.TaskID] = true
	}
	return set
}

func sumPoints(entries []*domain.ActivityEntry) int {
	total := 0
	for _, e := range entries {
		total += e.PointsEarned
	}
	return total
}
