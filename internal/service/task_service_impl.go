package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/grindstone/internal/app"
	"github.com/alexanderramin/grindstone/internal/calendar"
	"github.com/alexanderramin/grindstone/internal/db"
	"github.com/alexanderramin/grindstone/internal/domain"
	"github.com/alexanderramin/grindstone/internal/engine"
	"github.com/alexanderramin/grindstone/internal/metrics"
	"github.com/alexanderramin/grindstone/internal/repository"
	"github.com/google/uuid"
)

type taskService struct {
	tasks    repository.TaskRepo
	domains  repository.DomainRepo
	settings SettingsService
	uow      db.UnitOfWork
	cal      *calendar.Calendar
	observer UseCaseObserver
}

func NewTaskService(
	tasks repository.TaskRepo,
	domains repository.DomainRepo,
	settings SettingsService,
	uow db.UnitOfWork,
	cal *calendar.Calendar,
	observers ...UseCaseObserver,
) TaskService {
	return &taskService{
		tasks:    tasks,
		domains:  domains,
		settings: settings,
		uow:      uow,
		cal:      cal,
		observer: useCaseObserverOrNoop(observers),
	}
}

// guard rejects op with a *engine.LockedError while today is locked.
func (s *taskService) guard(ctx context.Context, op string) error {
	err := s.settings.Guard(ctx, op)
	if engine.IsLocked(err) {
		metrics.LockRejections.WithLabelValues(strings.ReplaceAll(op, " ", "_")).Inc()
	}
	return err
}

func (s *taskService) AddFromPhrase(ctx context.Context, text string) (task *domain.Task, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		if task != nil {
			fields["task_id"] = task.ID
			fields["points"] = task.Points
		}
		observe(ctx, s.observer, "add-task", startedAt, fields, &err)
	}()

	if err = s.guard(ctx, engine.OpCreateTask); err != nil {
		return nil, err
	}

	domains, err := s.domains.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("loading domains: %w", err)
	}
	parsed, err := engine.ParseTaskPhrase(text, domainValues(domains))
	if err != nil {
		return nil, err
	}

	now := s.cal.Now().UTC()
	task = &domain.Task{
		ID:        uuid.New().String(),
		DomainID:  parsed.Domain.ID,
		Title:     parsed.Title,
		IsActive:  true,
		Points:    parsed.Points,
		CreatedAt: now,
		UpdatedAt: now,
	}
	task.ApplyDefaults()
	if err = s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	fields["domain"] = parsed.Domain.Name
	return task, nil
}

// Delete removes a task and its ledger entries. Wallet points already
// earned are kept.
func (s *taskService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"task_id": id}
	defer func() {
		observe(ctx, s.observer, "delete-task", startedAt, fields, &err)
	}()

	if err = s.guard(ctx, engine.OpDeleteTask); err != nil {
		return err
	}
	return s.tasks.Delete(ctx, id)
}

// ToggleCompletion marks the task done for today, or undoes today's most
// recent completion. It is never lock gated. Turning off debits exactly the
// points the removed entry earned, floored at zero.
func (s *taskService) ToggleCompletion(ctx context.Context, id string) (out *app.ToggleOutcome, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"task_id": id}
	defer func() {
		if out != nil {
			fields["completed"] = out.Completed
			fields["delta"] = out.Delta
		}
		observe(ctx, s.observer, "toggle-completion", startedAt, fields, &err)
	}()

	today := s.cal.Today()
	now := s.cal.Now().UTC()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txActivity := repository.NewSQLiteActivityRepo(tx)
		txSettings := repository.NewSQLiteSettingsRepo(tx)

		task, err := txTasks.GetByID(ctx, id)
		if err != nil {
			return err
		}
		settings, err := loadOrCreateSettings(ctx, txSettings, today)
		if err != nil {
			return err
		}

		out = &app.ToggleOutcome{Task: task}
		existing, err := txActivity.FindForDay(ctx, id, today)
		switch {
		case err == nil:
			if err := txActivity.Remove(ctx, existing.ID); err != nil {
				return err
			}
			before := settings.WalletBalance
			settings.Debit(existing.PointsEarned)
			out.Delta = settings.WalletBalance - before
		case errors.Is(err, repository.ErrNotFound):
			entry := &domain.ActivityEntry{
				ID:           uuid.New().String(),
				TaskID:       id,
				Day:          today,
				PointsEarned: task.Points,
				Source:       domain.SourceToggle,
				CompletedAt:  now,
			}
			if err := txActivity.Record(ctx, entry); err != nil {
				return err
			}
			settings.Credit(task.Points)
			out.Completed = true
			out.Delta = task.Points
		default:
			return fmt.Errorf("finding today's completion: %w", err)
		}

		if err := txSettings.Upsert(ctx, settings); err != nil {
			return err
		}
		out.WalletBalance = settings.WalletBalance
		return nil
	})
	if err != nil {
		out = nil
		return nil, err
	}

	if out.Completed {
		metrics.CompletionsToggled.WithLabelValues("on").Inc()
		metrics.PointsAwarded.WithLabelValues(string(domain.SourceToggle)).Add(float64(out.Delta))
	} else {
		metrics.CompletionsToggled.WithLabelValues("off").Inc()
		metrics.PointsRevoked.Add(float64(-out.Delta))
	}
	metrics.WalletBalance.Set(float64(out.WalletBalance))
	return out, nil
}

func (s *taskService) List(ctx context.Context, activeOnly bool) ([]*domain.Task, error) {
	return s.tasks.List(ctx, activeOnly)
}

func (s *taskService) Get(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}
