package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/alexanderramin/grindstone/internal/calendar"
	"github.com/alexanderramin/grindstone/internal/domain"
	"github.com/alexanderramin/grindstone/internal/repository"
	"github.com/alexanderramin/grindstone/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackfill_EmptyHistoryWritesWindow(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	written, err := h.historySvc.Backfill(ctx, testToday)
	require.NoError(t, err)
	assert.Equal(t, 30, written)

	n, err := h.history.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 30, n)

	latest, err := h.history.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, testToday.AddDays(-1), latest.Day, "today is never frozen")

	exists, err := h.history.Exists(ctx, testToday.AddDays(-30))
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestBackfill_Idempotent(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.historySvc.Backfill(ctx, testToday)
	require.NoError(t, err)

	written, err := h.historySvc.Backfill(ctx, testToday)
	require.NoError(t, err)
	assert.Zero(t, written)

	n, err := h.history.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 30, n)
}

func TestBackfill_FreezesLedgerTotals(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	d := h.domain(t, "Physical")
	run := h.task(t, d, "Run")
	lift := h.task(t, d, "Lift")

	yesterday := testToday.AddDays(-1)
	h.entry(t, run, yesterday, 5)
	h.entry(t, lift, yesterday, 90)
	h.entry(t, run, testToday, 7)

	_, err := h.historySvc.Backfill(ctx, testToday)
	require.NoError(t, err)

	recent, err := h.historySvc.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, yesterday, recent[0].Day)
	assert.Equal(t, 95, recent[0].TotalPoints)
	assert.Equal(t, 2, recent[0].TasksCompleted)
	assert.Zero(t, recent[1].TotalPoints)
}

func TestBackfill_ResumesFromLatestRecord(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.historySvc.Backfill(ctx, testToday)
	require.NoError(t, err)

	h.clock.advanceDays(3)
	written, err := h.historySvc.Backfill(ctx, h.cal.Today())
	require.NoError(t, err)
	assert.Equal(t, 3, written)

	n, err := h.history.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 33, n)
}

func TestBackfill_FrozenDayIgnoresLaterEntries(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	d := h.domain(t, "Physical")
	run := h.task(t, d, "Run")

	_, err := h.historySvc.Backfill(ctx, testToday)
	require.NoError(t, err)

	h.entry(t, run, testToday.AddDays(-1), 50)
	_, err = h.historySvc.Backfill(ctx, testToday)
	require.NoError(t, err)

	latest, err := h.history.Latest(ctx)
	require.NoError(t, err)
	assert.Zero(t, latest.TotalPoints, "history is written once and never recomputed")
}

// failingHistoryRepo fails CreateIfAbsent on the Nth call.
type failingHistoryRepo struct {
	repository.HistoryRepo
	calls  atomic.Int32
	failOn int32
}

func (r *failingHistoryRepo) CreateIfAbsent(ctx context.Context, h *domain.DailyHistory) (bool, error) {
	if r.calls.Add(1) == r.failOn {
		return false, errors.New("injected history write failure")
	}
	return r.HistoryRepo.CreateIfAbsent(ctx, h)
}

func TestBackfill_InterruptedRunResumes(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	flaky := &failingHistoryRepo{HistoryRepo: h.history, failOn: 11}
	svc := NewHistoryService(flaky, h.activity, DefaultBackfillWindow)

	written, err := svc.Backfill(ctx, testToday)
	require.Error(t, err)
	assert.Equal(t, 10, written)

	n, err := h.history.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	written, err = h.historySvc.Backfill(ctx, testToday)
	require.NoError(t, err)
	assert.Equal(t, 20, written)

	n, err = h.history.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 30, n)
}

func TestBackfill_ConcurrentRunsWriteEachDayOnce(t *testing.T) {
	database := testutil.NewFileTestDB(t)
	h := newHarnessOn(t, database)
	ctx := context.Background()

	var wg sync.WaitGroup
	var total atomic.Int32
	errs := make(chan error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc := NewHistoryService(repository.NewSQLiteHistoryRepo(database), repository.NewSQLiteActivityRepo(database), DefaultBackfillWindow)
			written, err := svc.Backfill(ctx, testToday)
			if err != nil {
				errs <- err
				return
			}
			total.Add(int32(written))
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	n, err := h.history.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 30, n)
	assert.Equal(t, int32(30), total.Load(), "each day is claimed by exactly one run")
}

func TestBackfill_CustomWindow(t *testing.T) {
	h := newHarness(t)
	svc := NewHistoryService(h.history, h.activity, 7)

	written, err := svc.Backfill(context.Background(), testToday)
	require.NoError(t, err)
	assert.Equal(t, 7, written)
}

func TestBackfill_LatestInFutureWritesNothing(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.history.CreateIfAbsent(ctx, &domain.DailyHistory{Day: testToday.AddDays(2)})
	require.NoError(t, err)

	written, err := h.historySvc.Backfill(ctx, calendar.Day(testToday))
	require.NoError(t, err)
	assert.Zero(t, written)
}
