package service

import (
	"context"
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

type sessionService struct {
	uow      db.UnitOfWork
	cal      *calendar.Calendar
	observer UseCaseObserver
}

func NewSessionService(uow db.UnitOfWork, cal *calendar.Calendar, observers ...UseCaseObserver) SessionService {
	return &sessionService{uow: uow, cal: cal, observer: useCaseObserverOrNoop(observers)}
}

// Complete scores a finished session, records it on the task, appends a
// fresh ledger entry and credits the wallet by exactly the score. Sessions
// stack: a second session on the same day appends another entry.
func (s *sessionService) Complete(ctx context.Context, taskID string, in app.SessionInput) (out *app.SessionOutcome, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"task_id": taskID}
	defer func() {
		if out != nil {
			fields["points"] = out.Points
		}
		observe(ctx, s.observer, "complete-session", startedAt, fields, &err)
	}()

	inputs, err := engine.NormalizeSession(engine.SessionInputs{
		ActualDuration:  in.ActualDuration,
		Difficulty:      domain.Difficulty(in.Difficulty),
		RecallAccuracy:  in.RecallAccuracy,
		ResistanceLevel: in.ResistanceLevel,
	})
	if err != nil {
		return nil, err
	}
	points := engine.ScoreSession(inputs)
	today := s.cal.Today()
	now := s.cal.Now().UTC()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txActivity := repository.NewSQLiteActivityRepo(tx)
		txSettings := repository.NewSQLiteSettingsRepo(tx)

		task, err := txTasks.GetByID(ctx, taskID)
		if err != nil {
			return err
		}
		if err := task.ApplySession(domain.SessionResult{
			ActualDuration:  inputs.ActualDuration,
			Difficulty:      inputs.Difficulty,
			ResistanceLevel: inputs.ResistanceLevel,
			RecallAccuracy:  inputs.RecallAccuracy,
			Reflection:      in.Reflection,
			Points:          points,
		}, now); err != nil {
			return err
		}
		if err := txTasks.Update(ctx, task); err != nil {
			return err
		}

		entry := &domain.ActivityEntry{
			ID:           uuid.New().String(),
			TaskID:       taskID,
			Day:          today,
			PointsEarned: points,
			Source:       domain.SourceSession,
			CompletedAt:  now,
		}
		if err := txActivity.Record(ctx, entry); err != nil {
			return err
		}

		settings, err := loadOrCreateSettings(ctx, txSettings, today)
		if err != nil {
			return err
		}
		settings.Credit(points)
		if err := txSettings.Upsert(ctx, settings); err != nil {
			return err
		}

		out = &app.SessionOutcome{
			Task:          task,
			Entry:         entry,
			Points:        points,
			WalletBalance: settings.WalletBalance,
		}
		return nil
	})
	if err != nil {
		out = nil
		return nil, err
	}

	metrics.SessionPoints.Observe(float64(points))
	metrics.PointsAwarded.WithLabelValues(string(domain.SourceSession)).Add(float64(points))
	metrics.WalletBalance.Set(float64(out.WalletBalance))
	return out, nil
}
