package app

import (
	"context"

	"github.com/alexanderramin/grindstone/internal/domain"
)

type DashboardUseCase interface {
	Today(ctx context.Context) (*DashboardView, error)
}

type LegacyUseCase interface {
	Overview(ctx context.Context) (*LegacyView, error)
}

type CompleteSessionUseCase interface {
	Complete(ctx context.Context, taskID string, in SessionInput) (*SessionOutcome, error)
}

type ToggleCompletionUseCase interface {
	ToggleCompletion(ctx context.Context, taskID string) (*ToggleOutcome, error)
}

type AddTaskUseCase interface {
	AddFromPhrase(ctx context.Context, text string) (*domain.Task, error)
}

type DeleteTaskUseCase interface {
	Delete(ctx context.Context, taskID string) error
}

type ToggleLockUseCase interface {
	ToggleLock(ctx context.Context) (LockStatus, error)
}
