package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/grindstone/internal/engine"
	"github.com/alexanderramin/grindstone/internal/repository"
	"github.com/alexanderramin/grindstone/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddFromPhrase_ParsesPointsAndDomain(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.domain(t, "Physical", testutil.WithDomainOrder(1))
	fin := h.domain(t, "Financial", testutil.WithDomainOrder(2))

	task, err := h.taskSvc.AddFromPhrase(ctx, "Review budget 3 pts financial")
	require.NoError(t, err)
	assert.Equal(t, "Review budget", task.Title)
	assert.Equal(t, 3, task.Points)
	assert.Equal(t, fin.ID, task.DomainID)

	stored, err := h.tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.Title, stored.Title)
	assert.True(t, stored.IsActive)
}

func TestAddFromPhrase_DefaultsToFirstDomain(t *testing.T) {
	h := newHarness(t)
	phys := h.domain(t, "Physical", testutil.WithDomainOrder(1))
	h.domain(t, "Social", testutil.WithDomainOrder(2))

	task, err := h.taskSvc.AddFromPhrase(context.Background(), "Stretch")
	require.NoError(t, err)
	assert.Equal(t, phys.ID, task.DomainID)
	assert.Equal(t, 1, task.Points)
}

func TestAddFromPhrase_NoActiveDomain(t *testing.T) {
	h := newHarness(t)
	h.domain(t, "Dormant", testutil.WithDomainInactive())

	_, err := h.taskSvc.AddFromPhrase(context.Background(), "anything")
	assert.ErrorIs(t, err, engine.ErrNoActiveDomain)
}

func TestAddFromPhrase_RejectedWhileLocked(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.domain(t, "Physical")
	h.lockToday(t)

	_, err := h.taskSvc.AddFromPhrase(ctx, "Run 2 pts")
	require.Error(t, err)
	assert.True(t, engine.IsLocked(err))
	assert.Contains(t, err.Error(), engine.LockedMessage)

	tasks, err := h.tasks.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestAddFromPhrase_StaleLockDoesNotBlock(t *testing.T) {
	h := newHarness(t)
	h.domain(t, "Physical")
	h.lockToday(t)
	h.clock.advanceDays(1)

	_, err := h.taskSvc.AddFromPhrase(context.Background(), "Run 2 pts")
	assert.NoError(t, err)
}

func TestDelete_RejectedWhileLocked(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	d := h.domain(t, "Physical")
	task := h.task(t, d, "Run")
	h.lockToday(t)

	err := h.taskSvc.Delete(ctx, task.ID)
	var locked *engine.LockedError
	require.True(t, errors.As(err, &locked))
	assert.Equal(t, engine.OpDeleteTask, locked.Operation)

	_, err = h.tasks.GetByID(ctx, task.ID)
	assert.NoError(t, err)
}

func TestDelete_RemovesTaskAndLedger(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	d := h.domain(t, "Physical")
	task := h.task(t, d, "Run")
	h.entry(t, task, testToday, 2)

	require.NoError(t, h.taskSvc.Delete(ctx, task.ID))

	_, err := h.tasks.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	n, err := h.activity.CountEntries(ctx, testToday)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestToggleCompletion_OnThenOffNetsZero(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	d := h.domain(t, "Physical")
	task := h.task(t, d, "Workout", testutil.WithPoints(5))

	on, err := h.taskSvc.ToggleCompletion(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, on.Completed)
	assert.Equal(t, 5, on.Delta)
	assert.Equal(t, 5, h.wallet(t))

	n, err := h.activity.CountEntries(ctx, testToday)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	off, err := h.taskSvc.ToggleCompletion(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, off.Completed)
	assert.Equal(t, -5, off.Delta)
	assert.Zero(t, h.wallet(t))

	n, err = h.activity.CountEntries(ctx, testToday)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestToggleCompletion_AllowedWhileLocked(t *testing.T) {
	h := newHarness(t)
	d := h.domain(t, "Physical")
	task := h.task(t, d, "Workout", testutil.WithPoints(5))
	h.lockToday(t)

	out, err := h.taskSvc.ToggleCompletion(context.Background(), task.ID)
	require.NoError(t, err)
	assert.True(t, out.Completed)
}

func TestToggleCompletion_DebitUsesRecordedEntryPoints(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	d := h.domain(t, "Physical")
	task := h.task(t, d, "Workout", testutil.WithPoints(5))
	other := h.task(t, d, "Swim", testutil.WithPoints(20))

	_, err := h.taskSvc.ToggleCompletion(ctx, task.ID)
	require.NoError(t, err)
	_, err = h.taskSvc.ToggleCompletion(ctx, other.ID)
	require.NoError(t, err)
	require.Equal(t, 25, h.wallet(t))

	task.Points = 50
	require.NoError(t, h.tasks.Update(ctx, task))

	off, err := h.taskSvc.ToggleCompletion(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, -5, off.Delta)
	assert.Equal(t, 20, h.wallet(t))
}

func TestToggleCompletion_DebitFlooredAtZero(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	d := h.domain(t, "Physical")
	task := h.task(t, d, "Workout", testutil.WithPoints(5))

	_, err := h.taskSvc.ToggleCompletion(ctx, task.ID)
	require.NoError(t, err)
	require.NoError(t, h.settingsSvc.ResetWallet(ctx))

	off, err := h.taskSvc.ToggleCompletion(ctx, task.ID)
	require.NoError(t, err)
	assert.Zero(t, off.Delta)
	assert.Zero(t, h.wallet(t))
}

func TestToggleCompletion_UnknownTask(t *testing.T) {
	h := newHarness(t)

	_, err := h.taskSvc.ToggleCompletion(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestToggleCompletion_YesterdayEntryIsUntouched(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	d := h.domain(t, "Physical")
	task := h.task(t, d, "Workout", testutil.WithPoints(5))
	h.entry(t, task, testToday.AddDays(-1), 5)

	out, err := h.taskSvc.ToggleCompletion(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, out.Completed, "yesterday's completion does not count for today")

	earlier, err := h.activity.ListByDay(ctx, testToday.AddDays(-1))
	require.NoError(t, err)
	assert.Len(t, earlier, 1)
	current, err := h.activity.ListByDay(ctx, testToday)
	require.NoError(t, err)
	assert.Len(t, current, 1)
}

func TestToggleCompletion_RollsBackWhenWalletWriteFails(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	d := h.domain(t, "Spiritual")
	task := h.task(t, d, "Meditate", testutil.WithPoints(2))

	faulty := &testutil.FaultyUoW{DB: h.db, Match: "INSERT INTO game_settings", Err: errors.New("disk full")}
	svc := NewTaskService(h.tasks, h.domains, h.settingsSvc, faulty, h.cal)

	_, err := svc.ToggleCompletion(ctx, task.ID)
	require.Error(t, err)

	n, err := h.activity.CountEntries(ctx, testToday)
	require.NoError(t, err)
	assert.Zero(t, n, "ledger entry rolled back with the wallet")
}
