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

type settingsService struct {
	settings repository.SettingsRepo
	cal      *calendar.Calendar
	observer UseCaseObserver
}

func NewSettingsService(
	settings repository.SettingsRepo,
	cal *calendar.Calendar,
	observers ...UseCaseObserver,
) SettingsService {
	return &settingsService{
		settings: settings,
		cal:      cal,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *settingsService) Load(ctx context.Context) (*domain.GameSettings, error) {
	return loadOrCreateSettings(ctx, s.settings, s.cal.Today())
}

// CheckLock reconciles the stored lock with today and saves it when the
// day boundary released it.
func (s *settingsService) CheckLock(ctx context.Context) (app.LockStatus, error) {
	check, err := s.reconcile(ctx, s.cal.Today())
	if err != nil {
		return app.LockStatus{}, err
	}
	return app.LockStatus{State: check.State, Day: check.Settings.LockDay}, nil
}

func (s *settingsService) Guard(ctx context.Context, op string) error {
	today := s.cal.Today()
	check, err := s.reconcile(ctx, today)
	if err != nil {
		return err
	}
	return engine.GuardMutation(check.Settings, today, op)
}

func (s *settingsService) reconcile(ctx context.Context, today calendar.Day) (engine.LockCheck, error) {
	current, err := loadOrCreateSettings(ctx, s.settings, today)
	if err != nil {
		return engine.LockCheck{}, err
	}
	check := engine.CheckLock(*current, today)
	if check.Changed {
		if err := s.settings.Upsert(ctx, &check.Settings); err != nil {
			return engine.LockCheck{}, fmt.Errorf("saving reconciled lock: %w", err)
		}
	}
	return check, nil
}

func (s *settingsService) ToggleLock(ctx context.Context) (status app.LockStatus, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		fields["state"] = string(status.State)
		observe(ctx, s.observer, "toggle-lock", startedAt, fields, &err)
	}()

	today := s.cal.Today()
	current, err := loadOrCreateSettings(ctx, s.settings, today)
	if err != nil {
		return app.LockStatus{}, err
	}
	next := engine.ToggleLock(*current, today)
	if err = s.settings.Upsert(ctx, &next); err != nil {
		return app.LockStatus{}, fmt.Errorf("saving lock: %w", err)
	}
	return lockStatusOf(next, today), nil
}

func (s *settingsService) ResetWallet(ctx context.Context) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		observe(ctx, s.observer, "reset-wallet", startedAt, fields, &err)
	}()

	current, err := loadOrCreateSettings(ctx, s.settings, s.cal.Today())
	if err != nil {
		return err
	}
	fields["previous_balance"] = current.WalletBalance
	current.WalletBalance = 0
	if err = s.settings.Upsert(ctx, current); err != nil {
		return fmt.Errorf("resetting wallet: %w", err)
	}
	metrics.WalletBalance.Set(0)
	return nil
}

func lockStatusOf(s domain.GameSettings, today calendar.Day) app.LockStatus {
	return app.LockStatus{State: engine.CheckLock(s, today).State, Day: s.LockDay}
}
