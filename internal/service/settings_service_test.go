package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/grindstone/internal/domain"
	"github.com/alexanderramin/grindstone/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_CreatedLazily(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	s, err := h.settingsSvc.Load(ctx)
	require.NoError(t, err)
	assert.False(t, s.IsLocked)
	assert.Equal(t, testToday, s.LockDay)
	assert.Empty(t, s.EarnedBadges)
	assert.Zero(t, s.WalletBalance)

	again, err := h.settingsSvc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, s, again)
}

func TestToggleLock_FlipsAndStampsToday(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	status, err := h.settingsSvc.ToggleLock(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Locked, status.State)
	assert.Equal(t, testToday, status.Day)

	status, err = h.settingsSvc.ToggleLock(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Unlocked, status.State)
}

func TestCheckLock_ReleasedAcrossDayBoundary(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.lockToday(t)

	h.clock.advanceDays(1)
	status, err := h.settingsSvc.CheckLock(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Unlocked, status.State)
	assert.Equal(t, testToday.AddDays(1), status.Day)

	stored, err := h.settings.Get(ctx)
	require.NoError(t, err)
	assert.False(t, stored.IsLocked)
	assert.Equal(t, testToday.AddDays(1), stored.LockDay, "reconciled lock is persisted")
}

func TestCheckLock_SameDayHolds(t *testing.T) {
	h := newHarness(t)
	h.lockToday(t)

	status, err := h.settingsSvc.CheckLock(context.Background())
	require.NoError(t, err)
	assert.True(t, status.IsLocked())
}

func TestResetWallet(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	s, err := h.settingsSvc.Load(ctx)
	require.NoError(t, err)
	s.Credit(75)
	require.NoError(t, h.settings.Upsert(ctx, s))

	require.NoError(t, h.settingsSvc.ResetWallet(ctx))
	assert.Zero(t, h.wallet(t))
}

func TestGuard(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.settingsSvc.Guard(ctx, engine.OpCreateTask))

	h.lockToday(t)
	err := h.settingsSvc.Guard(ctx, engine.OpCreateTask)
	var locked *engine.LockedError
	require.ErrorAs(t, err, &locked)
	assert.Equal(t, engine.OpCreateTask, locked.Operation)
	assert.Equal(t, testToday, locked.Day)

	h.clock.advanceDays(1)
	require.NoError(t, h.settingsSvc.Guard(ctx, engine.OpDeleteTask))
	stored, err := h.settings.Get(ctx)
	require.NoError(t, err)
	assert.False(t, stored.IsLocked, "guard persists the released lock")
}
