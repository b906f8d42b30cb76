package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/grindstone/internal/calendar"
	"github.com/alexanderramin/grindstone/internal/db"
	"github.com/alexanderramin/grindstone/internal/domain"
	"github.com/alexanderramin/grindstone/internal/repository"
	"github.com/alexanderramin/grindstone/internal/testutil"
	"github.com/stretchr/testify/require"
)

const testToday calendar.Day = "2025-10-25"

// movableClock lets a test cross a day boundary.
type movableClock struct {
	mu sync.Mutex
	at time.Time
}

func (c *movableClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.at
}

func (c *movableClock) advanceDays(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.at = c.at.AddDate(0, 0, n)
}

type harness struct {
	db       *sql.DB
	clock    *movableClock
	cal      *calendar.Calendar
	uow      db.UnitOfWork
	domains  *repository.SQLiteDomainRepo
	tasks    *repository.SQLiteTaskRepo
	activity *repository.SQLiteActivityRepo
	history  *repository.SQLiteHistoryRepo
	settings *repository.SQLiteSettingsRepo

	historySvc   HistoryService
	settingsSvc  SettingsService
	taskSvc      TaskService
	sessionSvc   SessionService
	dashboardSvc DashboardService
	legacySvc    LegacyService
	domainSvc    DomainService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessOn(t, testutil.NewTestDB(t))
}

func newHarnessOn(t *testing.T, database *sql.DB) *harness {
	t.Helper()
	clock := &movableClock{at: testToday.Time().Add(12 * time.Hour)}
	h := &harness{
		db:       database,
		clock:    clock,
		cal:      calendar.New(clock, time.UTC),
		uow:      testutil.NewTestUoW(database),
		domains:  repository.NewSQLiteDomainRepo(database),
		tasks:    repository.NewSQLiteTaskRepo(database),
		activity: repository.NewSQLiteActivityRepo(database),
		history:  repository.NewSQLiteHistoryRepo(database),
		settings: repository.NewSQLiteSettingsRepo(database),
	}
	h.historySvc = NewHistoryService(h.history, h.activity, DefaultBackfillWindow)
	h.settingsSvc = NewSettingsService(h.settings, h.cal)
	h.taskSvc = NewTaskService(h.tasks, h.domains, h.settingsSvc, h.uow, h.cal)
	h.sessionSvc = NewSessionService(h.uow, h.cal)
	h.dashboardSvc = NewDashboardService(h.historySvc, h.settingsSvc, h.domains, h.tasks, h.activity, h.cal)
	h.legacySvc = NewLegacyService(h.activity, h.settings, h.historySvc, h.cal, DefaultHistoryLimit)
	h.domainSvc = NewDomainService(h.domains, h.uow, h.cal)
	return h
}

func (h *harness) domain(t *testing.T, name string, opts ...testutil.DomainOption) *domain.Domain {
	t.Helper()
	d := testutil.NewTestDomain(name, opts...)
	require.NoError(t, h.domains.Create(context.Background(), d))
	return d
}

func (h *harness) task(t *testing.T, d *domain.Domain, title string, opts ...testutil.TaskOption) *domain.Task {
	t.Helper()
	task := testutil.NewTestTask(d.ID, title, opts...)
	require.NoError(t, h.tasks.Create(context.Background(), task))
	return task
}

func (h *harness) entry(t *testing.T, task *domain.Task, day calendar.Day, points int) {
	t.Helper()
	require.NoError(t, h.activity.Record(context.Background(), testutil.NewTestEntry(task.ID, day, points)))
}

func (h *harness) wallet(t *testing.T) int {
	t.Helper()
	s, err := h.settings.Get(context.Background())
	require.NoError(t, err)
	return s.WalletBalance
}

func (h *harness) lockToday(t *testing.T) {
	t.Helper()
	status, err := h.settingsSvc.ToggleLock(context.Background())
	require.NoError(t, err)
	require.True(t, status.IsLocked())
}
