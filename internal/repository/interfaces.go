package repository

import (
	"context"

	"github.com/alexanderramin/grindstone/internal/calendar"
	"github.com/alexanderramin/grindstone/internal/domain"
)

type DomainRepo interface {
	Create(ctx context.Context, d *domain.Domain) error
	GetByID(ctx context.Context, id string) (*domain.Domain, error)
	GetByName(ctx context.Context, name string) (*domain.Domain, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Domain, error)
	Update(ctx context.Context, d *domain.Domain) error
	Count(ctx context.Context) (int, error)
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Task, error)
	ListByDomain(ctx context.Context, domainID string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

// ActivityRepo is the append/remove ledger of point-earning events.
type ActivityRepo interface {
	Record(ctx context.Context, e *domain.ActivityEntry) error
	FindForDay(ctx context.Context, taskID string, day calendar.Day) (*domain.ActivityEntry, error)
	Remove(ctx context.Context, id string) error
	ListByDay(ctx context.Context, day calendar.Day) ([]*domain.ActivityEntry, error)
	ListDays(ctx context.Context) ([]calendar.Day, error)
	SumPoints(ctx context.Context, day calendar.Day) (int, error)
	CountEntries(ctx context.Context, day calendar.Day) (int, error)
	CountByDomain(ctx context.Context, activeOnly bool) (map[string]int, error)
}

type HistoryRepo interface {
	Latest(ctx context.Context) (*domain.DailyHistory, error)
	Exists(ctx context.Context, day calendar.Day) (bool, error)
	// CreateIfAbsent writes h unless a record for h.Day exists. It reports
	// whether a row was written.
	CreateIfAbsent(ctx context.Context, h *domain.DailyHistory) (bool, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.DailyHistory, error)
	Count(ctx context.Context) (int, error)
}

type SettingsRepo interface {
	Get(ctx context.Context) (*domain.GameSettings, error)
	Upsert(ctx context.Context, s *domain.GameSettings) error
}
