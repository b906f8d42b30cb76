package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/grindstone/internal/calendar"
	"github.com/alexanderramin/grindstone/internal/domain"
	"github.com/alexanderramin/grindstone/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type activityFixture struct {
	repo      *SQLiteActivityRepo
	tasks     *SQLiteTaskRepo
	domains   *SQLiteDomainRepo
	physical  *domain.Domain
	financial *domain.Domain
}

func activityTestSetup(t *testing.T) *activityFixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	f := &activityFixture{
		repo:      NewSQLiteActivityRepo(db),
		tasks:     NewSQLiteTaskRepo(db),
		domains:   NewSQLiteDomainRepo(db),
		physical:  testutil.NewTestDomain("Physical"),
		financial: testutil.NewTestDomain("Financial"),
	}
	require.NoError(t, f.domains.Create(ctx, f.physical))
	require.NoError(t, f.domains.Create(ctx, f.financial))
	return f
}

func (f *activityFixture) task(t *testing.T, d *domain.Domain, title string) *domain.Task {
	t.Helper()
	task := testutil.NewTestTask(d.ID, title)
	require.NoError(t, f.tasks.Create(context.Background(), task))
	return task
}

func TestActivityRepo_RecordAndSum(t *testing.T) {
	f := activityTestSetup(t)
	ctx := context.Background()
	run := f.task(t, f.physical, "Run")
	day := calendar.Day("2025-10-20")

	require.NoError(t, f.repo.Record(ctx, testutil.NewTestEntry(run.ID, day, 3)))
	require.NoError(t, f.repo.Record(ctx, testutil.NewTestEntry(run.ID, day, 7, testutil.WithSource(domain.SourceSession))))
	require.NoError(t, f.repo.Record(ctx, testutil.NewTestEntry(run.ID, day.AddDays(1), 100)))

	sum, err := f.repo.SumPoints(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, 10, sum)

	n, err := f.repo.CountEntries(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	empty, err := f.repo.SumPoints(ctx, "2020-01-01")
	require.NoError(t, err)
	assert.Equal(t, 0, empty)

	entries, err := f.repo.ListByDay(ctx, day)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.SourceToggle, entries[0].Source)
	assert.Equal(t, domain.SourceSession, entries[1].Source)
}

func TestActivityRepo_FindForDayReturnsMostRecent(t *testing.T) {
	f := activityTestSetup(t)
	ctx := context.Background()
	run := f.task(t, f.physical, "Run")
	day := calendar.Day("2025-10-20")
	noon := day.Time().Add(12 * time.Hour)

	older := testutil.NewTestEntry(run.ID, day, 1, testutil.WithCompletedAt(noon))
	newer := testutil.NewTestEntry(run.ID, day, 2, testutil.WithCompletedAt(noon.Add(time.Hour)))
	require.NoError(t, f.repo.Record(ctx, older))
	require.NoError(t, f.repo.Record(ctx, newer))

	got, err := f.repo.FindForDay(ctx, run.ID, day)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID)

	_, err = f.repo.FindForDay(ctx, run.ID, day.AddDays(1))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestActivityRepo_Remove(t *testing.T) {
	f := activityTestSetup(t)
	ctx := context.Background()
	run := f.task(t, f.physical, "Run")

	e := testutil.NewTestEntry(run.ID, "2025-10-20", 4)
	require.NoError(t, f.repo.Record(ctx, e))
	require.NoError(t, f.repo.Remove(ctx, e.ID))
	assert.ErrorIs(t, f.repo.Remove(ctx, e.ID), ErrNotFound)
}

func TestActivityRepo_ListDaysDistinctAscending(t *testing.T) {
	f := activityTestSetup(t)
	ctx := context.Background()
	run := f.task(t, f.physical, "Run")

	for _, d := range []calendar.Day{"2025-10-22", "2025-10-20", "2025-10-22", "2025-10-21"} {
		require.NoError(t, f.repo.Record(ctx, testutil.NewTestEntry(run.ID, d, 1)))
	}

	days, err := f.repo.ListDays(ctx)
	require.NoError(t, err)
	assert.Equal(t, []calendar.Day{"2025-10-20", "2025-10-21", "2025-10-22"}, days)
}

func TestActivityRepo_CountByDomain(t *testing.T) {
	f := activityTestSetup(t)
	ctx := context.Background()
	run := f.task(t, f.physical, "Run")
	budget := f.task(t, f.financial, "Budget")

	for i := 0; i < 3; i++ {
		require.NoError(t, f.repo.Record(ctx, testutil.NewTestEntry(run.ID, calendar.Day("2025-10-20").AddDays(i), 1)))
	}
	require.NoError(t, f.repo.Record(ctx, testutil.NewTestEntry(budget.ID, "2025-10-20", 1)))

	counts, err := f.repo.CountByDomain(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Physical": 3, "Financial": 1}, counts)

	f.financial.IsActive = false
	require.NoError(t, f.domains.Update(ctx, f.financial))

	counts, err = f.repo.CountByDomain(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Physical": 3}, counts)

	counts, err = f.repo.CountByDomain(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 1, counts["Financial"])
}

func TestActivityRepo_FindForDayOrdersWithinOneSecond(t *testing.T) {
	f := activityTestSetup(t)
	ctx := context.Background()
	run := f.task(t, f.physical, "Run")
	day := calendar.Day("2025-10-20")
	noon := day.Time().Add(12 * time.Hour)

	older := testutil.NewTestEntry(run.ID, day, 7, testutil.WithCompletedAt(noon.Add(100*time.Millisecond)))
	newer := testutil.NewTestEntry(run.ID, day, 99, testutil.WithCompletedAt(noon.Add(150*time.Millisecond)))
	require.NoError(t, f.repo.Record(ctx, newer))
	require.NoError(t, f.repo.Record(ctx, older))

	got, err := f.repo.FindForDay(ctx, run.ID, day)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID)
	assert.Equal(t, 99, got.PointsEarned)
	assert.True(t, got.CompletedAt.Equal(newer.CompletedAt))
}
