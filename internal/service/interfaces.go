package service

import (
	"context"

	"github.com/alexanderramin/grindstone/internal/app"
	"github.com/alexanderramin/grindstone/internal/calendar"
	"github.com/alexanderramin/grindstone/internal/domain"
)

type HistoryService interface {
	// Backfill writes a frozen record for every missing past day and returns
	// how many records it wrote.
	Backfill(ctx context.Context, today calendar.Day) (int, error)
	Recent(ctx context.Context, limit int) ([]*domain.DailyHistory, error)
}

type SettingsService interface {
	Load(ctx context.Context) (*domain.GameSettings, error)
	CheckLock(ctx context.Context) (app.LockStatus, error)
	// Guard returns a *engine.LockedError when op is blocked for today.
	Guard(ctx context.Context, op string) error
	ToggleLock(ctx context.Context) (app.LockStatus, error)
	ResetWallet(ctx context.Context) error
}

type TaskService interface {
	AddFromPhrase(ctx context.Context, text string) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
	ToggleCompletion(ctx context.Context, id string) (*app.ToggleOutcome, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Task, error)
	Get(ctx context.Context, id string) (*domain.Task, error)
}

type SessionService interface {
	Complete(ctx context.Context, taskID string, in app.SessionInput) (*app.SessionOutcome, error)
}

type DashboardService interface {
	Today(ctx context.Context) (*app.DashboardView, error)
}

type LegacyService interface {
	Overview(ctx context.Context) (*app.LegacyView, error)
}

// SeedResult counts what Seed created.
type SeedResult struct {
	Domains int
	Tasks   int
}

type DomainService interface {
	List(ctx context.Context, includeInactive bool) ([]*domain.Domain, error)
	Create(ctx context.Context, name, color string) (*domain.Domain, error)
	Deactivate(ctx context.Context, name string) error
	Seed(ctx context.Context, reset bool) (*SeedResult, error)
}

var (
	_ app.DashboardUseCase        = (DashboardService)(nil)
	_ app.LegacyUseCase           = (LegacyService)(nil)
	_ app.CompleteSessionUseCase  = (SessionService)(nil)
	_ app.ToggleCompletionUseCase = (TaskService)(nil)
	_ app.AddTaskUseCase          = (TaskService)(nil)
	_ app.DeleteTaskUseCase       = (TaskService)(nil)
	_ app.ToggleLockUseCase       = (SettingsService)(nil)
)
